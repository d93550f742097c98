// Command book submits a booking request from the terminal, the same way the
// website's contact form does.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/makeoverbyreet/makeover-contact/internal/client/form"
	"github.com/makeoverbyreet/makeover-contact/internal/client/notify"
)

func main() {
	var f form.Fields
	var devEndpoint string
	var timeout time.Duration

	flag.StringVar(&f.FirstName, "first", "", "first name (required)")
	flag.StringVar(&f.LastName, "last", "", "last name (required)")
	flag.StringVar(&f.Email, "email", "", "email address (required)")
	flag.StringVar(&f.Phone, "phone", "", "phone number (required)")
	flag.StringVar(&f.Service, "service", "", "service wanted")
	flag.StringVar(&f.Date, "date", "", "preferred date")
	flag.StringVar(&f.Message, "message", "", "message; \\n starts a new line")
	flag.StringVar(&devEndpoint, "dev-endpoint", "", "development only: post to this URL instead of "+form.Endpoint)
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "give up on the server after this long")
	flag.Parse()

	f.Message = strings.ReplaceAll(f.Message, `\n`, "\n")

	center := notify.NewCenter(notify.OnChange(printer()))

	opts := []form.Option{
		form.WithHTTPClient(&http.Client{Timeout: timeout}),
		form.OnButtonChange(func(b form.Button) {
			if b.Disabled {
				fmt.Fprintf(os.Stderr, "[%s]\n", b.Label)
			}
		}),
	}
	if devEndpoint != "" {
		fmt.Fprintf(os.Stderr, "using development endpoint %s\n", devEndpoint)
		opts = append(opts, form.WithEndpoint(devEndpoint))
	}
	ctl := form.NewController(center, opts...)
	ctl.SetFields(f)

	err := ctl.Submit(context.Background())
	center.Close()
	if err != nil {
		os.Exit(1)
	}
}

// printer writes each notification once, when it first appears.
func printer() func([]notify.Entry) {
	var mu sync.Mutex
	seen := map[notify.Handle]bool{}
	return func(entries []notify.Entry) {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range entries {
			if seen[e.Handle] || !e.Visible {
				continue
			}
			seen[e.Handle] = true
			if e.Title != "" {
				fmt.Printf("%s %s: %s\n", e.Icon(), e.Title, e.Message)
			} else {
				fmt.Printf("%s %s\n", e.Icon(), e.Message)
			}
		}
	}
}
