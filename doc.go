/*

Package agentpay is a client library for the AgentEscrow contract: a payer
locks funds for a task, a payee submits a deliverable, and a verifier scores
the work which releases the funds according to the contract's split rule.

The contract owns all state and enforces every lifecycle transition. This
library only builds, signs and submits the corresponding transactions and
decodes results and events back into Go values. Look into the client package
for the operations, the signer package for key handling and the units package
for the ether/wei boundary.

*/

package agentpay
