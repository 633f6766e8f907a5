// Package site is the HTTP entry point of the application.
//
// Every request goes through one dispatch step. Non-POST requests for an
// existing file are answered from the asset directory. POST requests under a
// form prefix go to the enquiry handlers. Everything else gets the SPA entry
// document so the client-side router can take over.
package site
