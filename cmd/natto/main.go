package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	natto "github.com/buruzaemon/natto-go"
)

func main() {
	options := flag.String("options", "", "MeCab option string, e.g. \"-N2 --all-morphs\"")
	embedded := flag.Bool("embedded", false, "use the bundled pure-Go engine instead of libmecab")
	boundary := flag.String("boundary", "", "regexp boundary constraint applied to every line")
	anyBound := flag.Bool("any", false, "let the engine segment unmatched spans freely")
	nodes := flag.Bool("nodes", false, "emit node snapshots as JSON instead of formatted output")
	info := flag.Bool("info", false, "print version and dictionary info, then exit")
	flag.Parse()

	m, err := newTagger(*embedded, *options)
	if err != nil {
		fmt.Fprintln(os.Stderr, "natto:", err)
		os.Exit(1)
	}
	defer m.Close()

	if *info {
		fmt.Println("version:", m.Version())
		for _, d := range m.Dicts() {
			fmt.Println(" ", d)
		}
		return
	}

	var popts []natto.ParseOption
	if *boundary != "" {
		popts = append(popts, natto.WithBoundaryConstraints(*boundary, *anyBound))
	}

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if *nodes {
			ns, err := m.ParseToNodes(line, popts...)
			if err != nil {
				fmt.Fprintln(os.Stderr, "natto:", err)
				continue
			}
			out, _ := json.MarshalIndent(ns, "", "  ")
			fmt.Println(string(out))
			continue
		}
		out, err := m.Parse(line, popts...)
		if err != nil {
			fmt.Fprintln(os.Stderr, "natto:", err)
			continue
		}
		fmt.Println(out)
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "natto:", err)
		os.Exit(1)
	}
}

func newTagger(embedded bool, options string) (*natto.MeCab, error) {
	if embedded {
		return natto.NewEmbedded(options)
	}
	return natto.New(options)
}
