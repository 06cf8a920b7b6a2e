package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	mdf4 "github.com/R1tschY/mdf4j-sub001"
	"github.com/urfave/cli/v3"
)

func channelsCmd(a *app) *cli.Command {
	group := -1

	return &cli.Command{
		Name:      "channels",
		Usage:     "List the channels of every channel group",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "group", Aliases: []string{"g"}, Usage: "only list this group (-1 = all)", Value: -1, Destination: &group},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer f.Close()

			return printChannels(cmd.Root().Writer, f, group)
		},
	}
}

func printChannels(w io.Writer, f *mdf4.File, only int) error {
	list, err := groups(f)
	if err != nil {
		return err
	}
	if only >= len(list) {
		return fmt.Errorf("group %d out of range, the file has %d groups", only, len(list))
	}

	for i, cg := range list {
		if only >= 0 && i != only {
			continue
		}
		name, err := cg.Name()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "[%d] %s\n", i, name)

		for ch, err := range cg.Channels() {
			if err != nil {
				return err
			}
			if err := printChannel(w, ch, 1); err != nil {
				return err
			}
		}
	}

	return nil
}

func printChannel(w io.Writer, ch *mdf4.Channel, depth int) error {
	name, err := ch.Name()
	if err != nil {
		return err
	}
	unit, err := ch.Unit()
	if err != nil {
		return err
	}

	typ := "unsupported"
	if t, err := ch.DataType(); err == nil {
		typ = t.String()
	}

	b := ch.Block
	fmt.Fprintf(w, "%s%-24s %-28s %-10s %s byte=%d bit=%d bits=%d\n",
		strings.Repeat("  ", depth), name, typ, unit, b.Type, b.ByteOffset, b.BitOffset, b.BitCount)

	for m, err := range ch.Members() {
		if err != nil {
			return err
		}
		if err := printChannel(w, m, depth+1); err != nil {
			return err
		}
	}

	return nil
}
