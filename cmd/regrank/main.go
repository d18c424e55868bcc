// Command regrank compiles a pattern and ranks or unranks words of its
// language from the command line.
//
// Usage:
//
//	regrank -n 16 -fst '(a|b)+'          print the minimized DFA as FST text
//	regrank -n 16 -dot '(a|b)+'          print the DFA as Graphviz text
//	regrank -n 16 -count '(a|b)+'        print |L_n| in decimal
//	regrank -n 16 -unrank 1000 '(a|b)+'  print the 1000th word on stdout
//	regrank -n 16 -rank '(a|b)+' < word  rank the word read from stdin
//
// Indices cross the boundary as base-10 strings; words are raw bytes on
// stdin/stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/coregx/regrank"
	"github.com/coregx/regrank/dfa"
	"github.com/coregx/regrank/encoder"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("regrank: ")

	var (
		n      = flag.Int("n", 16, "fixed slice (maximum word length)")
		fst    = flag.Bool("fst", false, "print the minimized DFA in FST text form")
		dot    = flag.Bool("dot", false, "print the minimized DFA in Graphviz form")
		count  = flag.Bool("count", false, "print the number of words of length at most n")
		rank   = flag.Bool("rank", false, "rank the word read from stdin")
		unrank = flag.String("unrank", "", "unrank the given base-10 index")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("expected exactly one pattern argument")
	}
	pattern := flag.Arg(0)

	if *fst || *dot {
		d, err := dfa.FromPattern(pattern)
		if err != nil {
			log.Fatal(err)
		}
		if *fst {
			fmt.Print(d.MarshalFST())
		}
		if *dot {
			fmt.Print(d.MarshalDOT())
		}
		return
	}

	enc, err := regrank.Compile(pattern, *n)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case *count:
		words, err := enc.NumWords(0, enc.FixedSlice())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(encoder.FormatIndex(words))
	case *rank:
		word, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
		i, err := enc.Rank(word)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(encoder.FormatIndex(i))
	case *unrank != "":
		i, err := encoder.ParseIndex(*unrank)
		if err != nil {
			log.Fatal(err)
		}
		word, err := enc.Unrank(i)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := os.Stdout.Write(word); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("one of -fst, -dot, -count, -rank or -unrank is required")
	}
}
