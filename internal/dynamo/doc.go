// Package dynamo drives repeated Runge-Kutta steps for scalar problems.
//
// The stepping engines in package rk advance a solution by exactly one
// step. This package supplies the caller-side loop around them:
//
//   - [Simulator]: runs a fixed number of steps of one engine
//   - [Observer] and [Metric]: hooks called after every accepted step
//   - [Ensemble]: runs independent simulators concurrently
//
// # Example
//
//	p := problems.NewExp()
//	s := dynamo.New(p, rk.Specialize(tableau.RK4))
//	x0, y0 := p.Initial()
//	result, _ := s.Run(ctx, x0, y0, dynamo.DefaultConfig())
//
// # Thread Safety
//
// A Simulator owns its derivative buffer and is NOT safe for concurrent
// use. [Ensemble] runs one Simulator per goroutine.
package dynamo
