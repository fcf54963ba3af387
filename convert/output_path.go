package convert

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"dmmu/config"
	"dmmu/state"
)

// buildOutputPath returns output file path for the source. "src" is source
// path relative to what was requested on command line, including file name.
// Source directory structure is kept unless NoDirs is set. Name is cleaned up
// and if requested transliterated.
func buildOutputPath(src, dst string, env *state.LocalEnv) string {
	return filepath.Join(determineOutputDir(src, dst, env), buildFileName(src, env))
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

func buildFileName(src string, env *state.LocalEnv) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if env.Cfg.Unpack.FileNameTransliterate {
		base = slug.Make(base)
	}
	return config.CleanFileName(base) + env.Cfg.Unpack.OutputExt
}
