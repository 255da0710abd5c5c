/*
Package viveka is a rule-based loan advisory engine: a deterministic dialogue
controller for guiding a customer from first contact to a sanctioned loan,
plus the supporting tools of the advisory product (budget planner, content
catalog, SMS opt-in).

The conversation is a staged state machine. Each session moves through
greeting, consent, detail collection and document collection, and ends either
approved or escalated to a human officer. Given the same inputs and a fixed
verification policy, a conversation is fully reproducible.

The core is decoupled from its hosts. The Advisor can be embedded directly,
served over HTTP (with live transcript streaming via SSE), exposed to AI
agents over MCP, or driven from the bundled CLI.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/vivekalabs/viveka"
	)

	func main() {
		adv, err := viveka.New()
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		sess, _, err := adv.StartSession(ctx, "")
		if err != nil {
			log.Fatal(err)
		}

		sess, err = adv.Send(ctx, sess.ID, "I want a car loan")
		if err != nil {
			log.Fatal(err)
		}

		for _, msg := range sess.Transcript {
			fmt.Printf("[%s] %s\n", msg.Sender, msg.Text)
		}
	}

Sessions persist through a pluggable store: in-memory for embedding and
tests, file-backed for single instances, Redis for multi-instance
deployments with distributed locking.
*/
package viveka
