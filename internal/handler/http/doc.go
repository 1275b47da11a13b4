// Package http is the local HTTP adapter of the access-control core.
//
// A UI process that does not link the core in-process talks to it through
// this package: it logs in for a bearer token, asks the quota ledger before
// every privileged action and reports the forecasts and report files it
// produced. Expected outcomes are mapped to 4xx statuses with a JSON
// {"error", "message"} body; see errorStatusMap.
package http
