// Package ofsc is a small client for the field service REST APIs the validator
// depends on: the metadata property holding the rule configuration, the
// equipment type enumeration, and the installed/customer inventories of an
// activity.
//
// Requests use HTTP Basic authentication built from the REST client id and
// secret. Non-2xx responses are returned as *StatusError.
package ofsc
