// Package cli implements vaultctl, the operator command line for
// projectvault.
//
// Commands:
//
//	genkey                                   print fresh encryption key material
//	token  -user ID [-secret S] [-ttl 15m]   mint an access token for a profile
//	ping                                     check that the server answers
//	list   -project ID                       list secrets of a project (no values)
//	create -project ID -name N [-type T] [-value V]
//	reveal -id ID                            print the cleartext value
//	update -id ID [-name N] [-type T] [-value V | -prompt] [-version N]
//	delete -id ID
//
// When create is given no -value, and when update is given -prompt, the
// value is read from the terminal without echo, or as one line from stdin
// when stdin is not a terminal.
package cli
