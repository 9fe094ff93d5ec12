package main

import (
	"fmt"

	"github.com/trezcool/smartfill/core/fill"
)

// predict prints the continuation of samples, one value per line.
// On a terminal the detected pattern is printed first.
func (cli *commandLine) predict(count int, samples []string) error {
	if maxCount := cli.conf.Fill.MaxCount; maxCount > 0 && count > maxCount {
		return fmt.Errorf("count must be at most %d (got %d)", maxCount, count)
	}

	pattern := fill.Classify(fill.Texts(samples...))
	if stdoutIsTerminal() {
		fmt.Fprintf(cli.out, "# pattern: %s\n", pattern.Kind())
	}
	for _, v := range pattern.Generate(count) {
		fmt.Fprintln(cli.out, v.String())
	}
	return nil
}
