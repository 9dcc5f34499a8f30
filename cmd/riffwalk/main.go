// Command riffwalk is a small CLI front end over the navigator: tree,
// validate and count.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ADM228/libriff-X/format/riff"
	"github.com/ADM228/libriff-X/pkg/navigator"
	"github.com/ADM228/libriff-X/pkg/riffopen"
)

func main() {
	app := &cli.App{
		Name:  "riffwalk",
		Usage: "inspect RIFF/BW64 container files",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log diagnostics while walking"},
		},
		Commands: []*cli.Command{
			treeCommand,
			validateCommand,
			countCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "riffwalk:", err)
		os.Exit(1)
	}
}

var treeCommand = &cli.Command{
	Name:      "tree",
	Usage:     "print the chunk tree",
	ArgsUsage: "<path|->",
	Action: func(c *cli.Context) error {
		h, err := openArg(c)
		if err != nil {
			return err
		}
		defer h.Free()

		fmt.Printf("%s %d bytes, type %s\n", h.CurrentListID(), h.CurrentListSize(), h.CurrentListType())
		return printTree(h, 1)
	},
}

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "validate the whole file structure",
	ArgsUsage: "<path|->",
	Action: func(c *cli.Context) error {
		h, err := openArg(c)
		if err != nil {
			return err
		}
		defer h.Free()

		if err := h.FileValidate(); err != nil {
			return cli.Exit(fmt.Sprintf("invalid: %v", err), exitCodeFor(err))
		}
		fmt.Println("ok")
		return nil
	},
}

var countCommand = &cli.Command{
	Name:      "count",
	Usage:     "count chunks in the top level",
	ArgsUsage: "<path|->",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "id", Usage: "only count chunks with this four-character id"},
	},
	Action: func(c *cli.Context) error {
		h, err := openArg(c)
		if err != nil {
			return err
		}
		defer h.Free()

		var n int64
		if id := c.String("id"); id != "" {
			if len(id) != 4 {
				return cli.Exit("--id must be exactly four characters", 2)
			}
			n, err = h.CountChunksInLevelWithId(riff.ParseFourCC([]byte(id)))
		} else {
			n, err = h.CountChunksInLevel()
		}
		if err != nil {
			return cli.Exit(fmt.Sprintf("count failed: %v", err), exitCodeFor(err))
		}
		fmt.Println(n)
		return nil
	},
}

func openArg(c *cli.Context) (*navigator.Handle, error) {
	if c.NArg() < 1 {
		return nil, cli.Exit("expected a file path (or - for stdin)", 2)
	}
	path := c.Args().First()

	var h *navigator.Handle
	var err error
	if path == "-" {
		tmp, terr := os.CreateTemp("", "riffwalk-stdin-*")
		if terr != nil {
			return nil, terr
		}
		os.Remove(tmp.Name())
		if _, terr := io.Copy(tmp, os.Stdin); terr != nil {
			tmp.Close()
			return nil, terr
		}
		if _, terr := tmp.Seek(0, io.SeekStart); terr != nil {
			tmp.Close()
			return nil, terr
		}
		h, err = riffopen.OpenFile(tmp)
		if h != nil {
			h.SetCloser(tmp)
		}
	} else {
		h, err = riffopen.OpenFilePath(path)
	}

	if h == nil {
		return nil, cli.Exit(fmt.Sprintf("open failed: %v", err), exitCodeFor(err))
	}

	if c.Bool("verbose") {
		logger := zap.Must(zap.NewDevelopment(zap.IncreaseLevel(zapcore.DebugLevel)))
		h.SetLogger(logger)
	}

	return h, nil
}

func printTree(h *navigator.Handle, depth int) error {
	for {
		indent := ""
		for i := 0; i < depth; i++ {
			indent += "  "
		}
		fmt.Printf("%s%s %d bytes @ %d\n", indent, h.CurrentChunkID(), h.CurrentChunkSize(), h.CurrentChunkStart())

		if h.CanBeChunkList() {
			if serr := h.SeekLevelSub(); serr == nil {
				fmt.Printf("%s  [%s]\n", indent, h.CurrentListType())
				if terr := printTree(h, depth+1); terr != nil {
					return terr
				}
				if perr := h.SeekLevelParentStart(); perr != nil && perr != riff.EOCL {
					return perr
				}
			}
		}

		err := h.SeekNextChunk()
		if err != nil {
			if err == riff.EOCL || err == riff.EXDAT {
				return nil
			}
			return err
		}
	}
}

func exitCodeFor(err error) int {
	if code, ok := err.(riff.Code); ok {
		return int(code)
	}
	return 1
}
