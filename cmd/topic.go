package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ewald/folio/docs"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "help-topic" }
func (*topicCmd) Synopsis() string { return "show documentation topics" }
func (*topicCmd) Usage() string {
	return `pft help-topic [<topic>...]

  Shows documentation. Without arguments, lists the available topics.
  Use "*" to print them all.
`
}
func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		all, err := docs.AllTopics()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("Available topics:")
		for _, t := range all {
			fmt.Println("  " + t)
		}
		return subcommands.ExitSuccess
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
