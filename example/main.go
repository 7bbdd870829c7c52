package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/pthm/hyperwire"
	"github.com/pthm/hyperwire/lib/htmldom"
)

var count atomic.Int64

func main() {
	serve := flag.String("serve", "", "listen address; when set the server runs in the foreground instead of the headless demo")
	flag.Parse()

	if *serve != "" {
		fmt.Printf("Starting server at http://localhost%s\n", *serve)
		log.Fatal(http.ListenAndServe(*serve, newMux()))
	}

	if err := runHeadless(); err != nil {
		log.Fatal(err)
	}
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := Page(count.Load()).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	mux.HandleFunc("POST /increment", func(w http.ResponseWriter, r *http.Request) {
		if !hyperwire.IsHyperwire(r) {
			http.Error(w, "expected a hyperwire exchange", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := CounterPartial(count.Add(1)).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	return mux
}

// runHeadless stands the server up on a loopback port, loads the page into
// an htmldom document, and clicks the increment button twice. The final
// markup shows both the swapped counter and the elsewhere-swapped toast.
func runHeadless() error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	defer ln.Close()
	go http.Serve(ln, newMux())

	base := &url.URL{Scheme: "http", Host: ln.Addr().String(), Path: "/"}
	resp, err := http.Get(base.String())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	doc, err := htmldom.ParseString(string(page), base)
	if err != nil {
		return err
	}
	engine := hyperwire.New(doc)
	engine.Install(doc.Body())

	btn, err := doc.Query("#inc")
	if err != nil {
		return err
	}
	doc.Fire(btn, "click")
	doc.Fire(btn, "click")

	out, err := doc.HTML()
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
