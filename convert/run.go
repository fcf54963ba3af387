package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"dmmu/archive"
	"dmmu/config"
	"dmmu/state"
	"dmmu/unpack"
)

// maxMapSize limits how much is read from a single archive entry.
const maxMapSize = 256 << 20

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite, env.TGM = cmd.Bool("nodirs"), cmd.Bool("overwrite"), cmd.Bool("tgm")
	if env.WantTGM() {
		log.Debug("TGM output requested, expanded layout does not depend on it")
	}

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	cp := cmd.String("force-zip-cp")
	if len(cp) == 0 {
		cp = env.Cfg.Unpack.ZipCodePage
	}
	env.CodePage = selectCodePage(cp, log)

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("existing", env.Existing()))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

func selectCodePage(name string, log *zap.Logger) encoding.Encoding {
	if len(name) == 0 {
		return nil
	}
	cp, err := ianaindex.IANA.Encoding(name)
	if err != nil || cp == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", name), zap.Error(err))
		return nil
	}
	n, _ := ianaindex.IANA.Name(cp)
	log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
	return cp
}

// process determines the input type (directory, archive, path inside archive
// or single file) and processes it accordingly.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return processDir(ctx, head, dst, log)
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		arc, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if arc {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			return processArchive(ctx, head, filepath.ToSlash(tail), "", dst, log)
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		data, err := os.ReadFile(head)
		if err != nil {
			return fmt.Errorf("unable to read map: %w", err)
		}
		if !hasExt(head, env.Cfg.Unpack.SourceExt) && detectKind(data) == kindUnknown {
			return fmt.Errorf("input was not recognized as packed map (%s)", head)
		}
		return processMap(ctx, data, filepath.Base(head), dst, log)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// processDir walks directory tree finding maps and archives and processes
// them in natural order.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Sort(natural.StringSlice(paths))

	var (
		count, failed int
		errs          error
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		arc, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if arc {
			if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, err))
			}
			continue
		}
		if !hasExt(path, env.Cfg.Unpack.SourceExt) {
			log.Debug("Skipping file, not recognized as map or archive", zap.String("file", path))
			continue
		}

		count++
		data, err := os.ReadFile(path)
		if err == nil {
			err = processMap(ctx, data, rel, dst, log)
		}
		if err != nil {
			failed++
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, err))
		}
	}

	if count == 0 && errs == nil {
		log.Debug("Nothing to process", zap.String("dir", dir))
	}
	if failed > 0 {
		log.Warn("Some maps were not converted", zap.String("dir", dir), zap.Int("failed", failed), zap.Int("total", count))
	}
	return errs
}

// processArchive walks all maps inside archive under "pathIn" and processes
// them. "pathOut" is archive location relative to processed directory.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	opts := []archive.Option{archive.WithSuffix(env.Cfg.Unpack.SourceExt)}
	if env.CodePage != nil {
		opts = append(opts, archive.WithCodePage(env.CodePage))
	}

	var (
		count int
		errs  error
	)
	err := archive.Walk(path, pathIn, func(arc string, e archive.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.PathErr != nil {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Warn("Unable to convert archive name from specified encoding",
				zap.String("charset", n), zap.String("path", e.Path), zap.Error(e.PathErr))
		}

		count++
		data, err := readEntry(e.File)
		if err == nil {
			err = processMap(ctx, data, filepath.Join(pathOut, filepath.FromSlash(e.Path)), dst, log)
		}
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", e.Path), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", e.Path, err))
		}
		return nil
	}, opts...)
	if err != nil {
		return multierr.Append(errs, err)
	}
	if count == 0 {
		log.Debug("Nothing to process", zap.String("archive", path), zap.String("path", pathIn))
	}
	return errs
}

func readEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxMapSize {
		return nil, fmt.Errorf("map is too large: %d bytes", f.UncompressedSize64)
	}
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, io.LimitReader(r, maxMapSize+1)); err != nil {
		return nil, err
	}
	if buf.Len() > maxMapSize {
		return nil, errors.New("map is too large")
	}
	return buf.Bytes(), nil
}

// processMap converts single packed map. "src" is part of the source path
// (always including file name) relative to the original path. When actual file
// was specified it will be just base file name without a path. When looking
// inside archive or directory it will be relative path inside archive or
// directory (including base file name). "dst" is the destination directory.
// Output is either written completely or not at all.
func processMap(ctx context.Context, data []byte, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	refID := uuid.NewString()
	log = log.With(zap.String("ref_id", refID))

	var outputName string

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		// bad input must not take the rest of the batch down
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil && len(outputName) > 0 {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	m, err := unpack.Load(data, unpack.Packed)
	if errors.Is(err, unpack.ErrAlreadyConverted) {
		log.Warn("Skipping map, it is already expanded", zap.String("file", src))
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to parse map source (%s): %w", src, err)
	}
	log.Debug("Map loaded", zap.Stringer("size", m.Size), zap.Int("key_length", m.KeyLength),
		zap.Int("tiles", m.Dictionary().Len()), zap.Stringer("format", m.Format))

	out, err := unpack.Encode(m, unpack.WithTGM(env.WantTGM()))
	if err != nil {
		return fmt.Errorf("unable to expand map (%s): %w", src, err)
	}

	outputName = buildOutputPath(src, dst, env)
	if _, err := os.Stat(outputName); err == nil {
		switch env.Existing() {
		case config.ExistingModeSkip:
			log.Warn("Output file already exists, skipping", zap.String("file", outputName))
			outputName = ""
			return nil
		case config.ExistingModeOverwrite:
			log.Warn("Overwriting existing file", zap.String("file", outputName))
		default:
			return fmt.Errorf("output file already exists: %s", outputName)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := writeFileAtomic(outputName, out); err != nil {
		return err
	}

	// Store conversion source and result for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("source/%s-%s", refID, filepath.Base(src)), data)
		env.Rpt.Store(fmt.Sprintf("result/%s-%s", refID, filepath.Base(outputName)), outputName)
	}
	return nil
}
