// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program sdlfmt reformats SDLang documents into a canonical layout.
//
// Usage:
//
//	sdlfmt [flags] [file ...]
//
// With no files, sdlfmt reads from stdin and writes to stdout.  Files
// whose names end in ".gz" are read and written gzip-compressed.
package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	"github.com/klauspost/compress/gzip"
	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"github.com/creachadair/sdlite"
)

var (
	doWrite = flag.Bool("w", false, "Write the result back to the source file instead of stdout")
	doCheck = flag.Bool("check", false, "Parse only; report errors without printing")
	doDump  = flag.Bool("dump", false, "Dump the parsed node tree instead of reformatting")
	numJobs = flag.Int("j", 4, "Number of files to process concurrently")
	verbose = flag.Bool("v", false, "Enable debug logging")
)

var log = logrus.New()

// outMu serializes writes to stdout across worker goroutines.
var outMu sync.Mutex

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	files := flag.Args()
	if len(files) == 0 {
		if *doWrite {
			log.Fatal("cannot use -w when reading from stdin")
		}
		if err := processFile("-"); err != nil {
			log.Fatal(err)
		}
		return
	}

	workers, err := ants.NewPool(*numJobs)
	if err != nil {
		log.Fatal(err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	var failed atomic.Int32
	for _, path := range files {
		wg.Add(1)
		err := workers.Submit(func() {
			defer wg.Done()
			if err := processFile(path); err != nil {
				log.WithField("file", path).Error(err)
				failed.Add(1)
			}
		})
		if err != nil {
			wg.Done()
			log.Fatal(err)
		}
	}
	wg.Wait()
	if failed.Load() > 0 {
		os.Exit(1)
	}
}

func processFile(path string) error {
	input, err := readInput(path)
	if err != nil {
		return err
	}
	nodes, err := sdlite.ParseAll(input, path)
	if err != nil {
		return err
	}
	log.Debugf("%s: parsed %d top-level nodes", path, len(nodes))

	if *doDump {
		outMu.Lock()
		defer outMu.Unlock()
		spew.Fdump(os.Stdout, nodes)
		return nil
	}
	if *doCheck {
		return nil
	}

	var buf bytes.Buffer
	if err := sdlite.Generate(&buf, nodes, 0); err != nil {
		return err
	}
	if *doWrite && path != "-" {
		return writeOutput(path, buf.Bytes())
	}
	outMu.Lock()
	defer outMu.Unlock()
	_, err = os.Stdout.Write(buf.Bytes())
	return err
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	return io.ReadAll(r)
}

func writeOutput(path string, data []byte) error {
	if strings.HasSuffix(path, ".gz") {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	return os.WriteFile(path, data, 0644)
}
