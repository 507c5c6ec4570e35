// Package custovault provides a Go client SDK for CustoVault,
// a digital-asset custody platform.
//
// Every API call is signed with the workspace's private key: each attempt
// carries a short-lived JWT bound to the exact request bytes, so a captured
// token cannot be replayed against another request. Webhook deliveries are
// verified the other way around, with RSA-SHA512 or ML-DSA-65 signatures
// over the raw body and optional ML-KEM-768 encrypted payloads.
//
// Basic usage:
//
//	cred, err := custovault.CredentialFromFile("your-key-id", "signing.pem")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := custovault.New(cred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Move funds between vault accounts
//	result, err := client.CreateTransaction(ctx, &custovault.TransferRequest{
//	    AssetID:     "BTC",
//	    Source:      &custovault.TransferPeer{Type: custovault.PeerVaultAccount, ID: "1"},
//	    Destination: &custovault.TransferPeer{Type: custovault.PeerVaultAccount, ID: "2"},
//	    Amount:      "0.5",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Wait for the transfer to settle
//	tx, err := client.WaitForTransaction(ctx, result.ID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Status:", tx.Status)
package custovault
