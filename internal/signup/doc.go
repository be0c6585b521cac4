// Package signup holds the validators behind the demo signup form: a
// username with length rules and a simulated availability lookup, and an age.
package signup
