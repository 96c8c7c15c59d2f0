// Package web is the portfolio application itself: the route table,
// the handlers behind it, and the HTML they render. Public pages and
// the contact form are open to everyone; the message inbox sits behind
// a single admin account configured through the environment.
package web
