// Package accountservice contains registration, login/logout and bearer
// token issuance for calendar users.
package accountservice
