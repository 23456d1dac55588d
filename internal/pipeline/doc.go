// Package pipeline sequences one provisioning run: precondition checks,
// optional bucket name refresh, source generation, file write, and the
// terraform init/plan/apply chain.
//
// Stages run strictly in order. The first error aborts the run with a
// StageError naming the stage; later stages never execute and nothing
// that already ran is rolled back.
package pipeline
