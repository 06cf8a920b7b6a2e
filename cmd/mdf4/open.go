package main

import (
	"errors"

	mdf4 "github.com/R1tschY/mdf4j-sub001"
	"github.com/urfave/cli/v3"
)

func (a *app) open(cmd *cli.Command) (*mdf4.File, error) {
	if cmd.Args().Len() != 1 {
		return nil, errors.New("expected exactly one file argument")
	}

	return mdf4.Open(cmd.Args().First(), mdf4.WithLogger(a.logger))
}

// groupAt selects the channel group with the given index, counting through
// all data groups in file order.
func groupAt(index int) func(*mdf4.DataGroup, *mdf4.ChannelGroup) bool {
	n := -1
	return func(*mdf4.DataGroup, *mdf4.ChannelGroup) bool {
		n++
		return n == index
	}
}

// groups collects all channel groups of f in file order.
func groups(f *mdf4.File) ([]*mdf4.ChannelGroup, error) {
	var out []*mdf4.ChannelGroup
	for dg, err := range f.DataGroups() {
		if err != nil {
			return nil, err
		}
		for cg, err := range dg.ChannelGroups() {
			if err != nil {
				return nil, err
			}
			out = append(out, cg)
		}
	}

	return out, nil
}
