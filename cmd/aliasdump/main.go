package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"

	log "github.com/sirupsen/logrus"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/irtools/alias/pkgutil"
	"github.com/irtools/alias/ssadriver"
)

var (
	dir    = flag.String("dir", "", "alternative directory to run the go build tool in")
	fnexpr = flag.String("fn", "", "only dump functions whose name matches this regexp")
	debug  = flag.Bool("debug", false, "print log.Debug messages")
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("Specify a package query on the command line")
	}
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	var filter *regexp.Regexp
	if *fnexpr != "" {
		var err error
		if filter, err = regexp.Compile(*fnexpr); err != nil {
			log.Fatalf("Bad -fn pattern: %v", err)
		}
	}

	pkgs, err := pkgutil.Load(*dir, flag.Args()...)
	if err != nil {
		log.Fatalf("Loading packages failed: %v", err)
	}
	log.Infof("Loaded %d packages", len(pkgs))

	prog, spkgs := ssautil.AllPackages(pkgs, ssa.InstantiateGenerics)
	prog.Build()

	for _, spkg := range spkgs {
		if spkg == nil {
			continue
		}
		for _, member := range spkg.Members {
			if fun, ok := member.(*ssa.Function); ok {
				dumpFunction(fun, filter)
			}
		}
	}
}

func dumpFunction(fun *ssa.Function, filter *regexp.Regexp) {
	if fun.Blocks != nil && (filter == nil || filter.MatchString(fun.String())) {
		fmt.Printf("--- %s ---\n", fun)
		ssadriver.BuildFunction(fun).Dump(os.Stdout)
	}

	for _, anon := range fun.AnonFuncs {
		dumpFunction(anon, filter)
	}
}
