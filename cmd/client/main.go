// Command client is a terminal front end for the user-records API. It
// drives the same state container and actions as the browser form.
//
//	client [--api URL] [--timeout 10s] list
//	client search <query>
//	client create --first Ann --last Lee --email ann@x.io --phone 5551234567 --dob 1990-05-02 [--image me.png]
//	client update <id> [--first ...] [--image new.png]
//	client delete <id>
package main

import (
	"context"
	"fmt"
	"os"
)

var exitFunc = os.Exit

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}
