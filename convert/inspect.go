package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"dmmu/dmm"
	"dmmu/state"
	"dmmu/unpack"
)

// Inspect prints model of packed or expanded map, or a single tile when
// coordinate was requested.
func Inspect(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("inspect")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no map has been specified")
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	return inspect(src, cmd.String("at"), out, log)
}

func inspect(src, at string, out io.Writer, log *zap.Logger) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read map: %w", err)
	}
	if detectKind(data) == kindExpanded {
		log.Debug("Map is in expanded form", zap.String("file", src))
	}

	m, err := unpack.Open(data)
	if err != nil {
		return fmt.Errorf("unable to load map (%s): %w", filepath.Base(src), err)
	}

	var text string
	if len(at) == 0 {
		text = m.String()
	} else {
		c, err := parseCoordArg(at)
		if err != nil {
			return err
		}
		t, err := m.TileAt(c)
		if err != nil {
			return err
		}
		text = unpack.ExpandTile(t) + "\n"
	}
	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	log.Info("Map inspected", zap.String("file", src), zap.Stringer("size", m.Size), zap.Int("tiles", m.Dictionary().Len()))
	return nil
}

// parseCoordArg accepts "X,Y,Z" with optional surrounding parentheses.
func parseCoordArg(s string) (dmm.Coord, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "()"), ",")
	if len(parts) != 3 {
		return dmm.Coord{}, fmt.Errorf("coordinate must be X,Y,Z: %q", s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 {
			return dmm.Coord{}, fmt.Errorf("coordinate must have positive components: %q", s)
		}
		v[i] = n
	}
	return dmm.Coord{X: v[0], Y: v[1], Z: v[2]}, nil
}
