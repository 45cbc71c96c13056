// Package core contains the shared data model and the consumer-side
// interfaces of AgentCouncil: conversations, chat messages, preferences,
// auto-saved knowledge records, the request-scoped AI context, the stream
// event wire format and the persistence gateway / transport contracts.
//
// The package is dependency-light by design so that every other package can
// import it without cycles. Concrete implementations live elsewhere (store,
// stream, model, agent, orchestrator).
package core
