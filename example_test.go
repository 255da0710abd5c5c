package viveka_test

import (
	"context"
	"fmt"
	"log"

	"github.com/vivekalabs/viveka"
	"github.com/vivekalabs/viveka/internal/dialogue"
)

// ExampleAdvisor drives a complete car loan conversation from greeting to
// approval. The randomized document verifier is replaced so the outcome is
// deterministic.
func ExampleAdvisor() {
	advisor, err := viveka.New(viveka.WithVerifier(dialogue.AcceptAll))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	sess, _, err := advisor.StartSession(ctx, "demo")
	if err != nil {
		log.Fatal(err)
	}

	for _, text := range []string{
		"I need a car loan",
		"yes, I agree",
		"10 lakhs for 5 years, I am salaried",
		"yes, proceed",
	} {
		sess, err = advisor.Send(ctx, sess.ID, text)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(sess.Stage)
	}

	for len(sess.PendingDocuments) > 0 {
		sess, err = advisor.Upload(ctx, sess.ID, sess.PendingDocuments[0], "scan.pdf")
		if err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println(sess.Stage)

	// Output:
	// consent
	// collecting_details
	// collecting_documents
	// collecting_documents
	// approved
}
