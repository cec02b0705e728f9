// Package qaoad provides a Go client for evaluating QAOA cost expectations
// without running the HTTP service. The client embeds the full pipeline:
// circuit compilation, backend execution and expectation estimation.
//
//	client, _ := qaoad.New(ctx, qaoad.WithSampler(42), qaoad.WithShots(4096))
//	res, _ := client.Evaluate(ctx, qaoad.Request{
//	    Cost: qaoad.Hamiltonian{Terms: []qaoad.Term{
//	        {Operators: "ZZ", Qubits: []int{0, 1}, Weight: 1},
//	    }},
//	    Depth:  1,
//	    Betas:  []float64{0.3},
//	    Gammas: []float64{0.7},
//	})
//
// The default backend is the exact state-vector simulator. WithSampler
// switches to seeded shot-based sampling; WithRemote executes on a
// provider-hosted device.
package qaoad
