package vm

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/fileutil"
	"github.com/OpenGMK/OpenGMK-sub000/pkg/gml"
)

// resolvePath makes a game path absolute against the working directory.
// Games were written for a case-insensitive file system, so each component
// is matched ignoring case.
func (g *Game) resolvePath(name string) (string, error) {
	name = fileutil.FromGamePath(gml.DecodeANSI(name))
	if filepath.IsAbs(name) || g.WorkingDirectory == "" {
		return fileutil.Resolve(".", name), nil
	}
	if fi, err := os.Stat(g.WorkingDirectory); err != nil || !fi.IsDir() {
		return "", gml.NewBadDirectory(g.WorkingDirectory)
	}
	return fileutil.Resolve(g.WorkingDirectory, name), nil
}

// CloseFiles closes every text file the game left open.
func (g *Game) CloseFiles() error {
	return g.files.closeAll()
}

func (k *Kernel) registerFile() {
	open := func(name string, flag int, write bool) KernelFunc {
		return func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
			path, err := g.resolvePath(str(args[0]))
			if err != nil {
				return gml.Value{}, err
			}
			f, err := os.OpenFile(path, flag, 0o644)
			if err != nil {
				g.log.Debug("text file open failed", "function", name, "path", path, "error", err)
				return gml.FromInt(-1), nil
			}
			id, err := g.files.open(f, write)
			if err != nil {
				f.Close()
				return gml.Value{}, gml.NewFunctionError(name, err.Error())
			}
			return gml.FromInt(id), nil
		}
	}
	k.registerFixed("file_text_open_read", 1, open("file_text_open_read", os.O_RDONLY, false))
	k.registerFixed("file_text_open_write", 1, open("file_text_open_write", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, true))
	k.registerFixed("file_text_open_append", 1, open("file_text_open_append", os.O_WRONLY|os.O_CREATE|os.O_APPEND, true))

	k.registerFixed("file_text_close", 1, withTextFile("file_text_close", func(g *Game, id int, _ *textFile, _ []gml.Value) (gml.Value, error) {
		return gml.Value{}, g.files.close(id)
	}))
	k.registerFixed("file_text_read_string", 1, withTextFile("file_text_read_string", func(_ *Game, _ int, tf *textFile, _ []gml.Value) (gml.Value, error) {
		s, err := tf.readString()
		return gml.FromString(s), err
	}))
	k.registerFixed("file_text_read_real", 1, withTextFile("file_text_read_real", func(_ *Game, _ int, tf *textFile, _ []gml.Value) (gml.Value, error) {
		f, err := tf.readReal()
		return gml.FromFloat(f), err
	}))
	k.registerFixed("file_text_readln", 1, withTextFile("file_text_readln", func(_ *Game, _ int, tf *textFile, _ []gml.Value) (gml.Value, error) {
		return gml.Value{}, tf.readLine()
	}))
	k.registerFixed("file_text_eof", 1, withTextFile("file_text_eof", func(_ *Game, _ int, tf *textFile, _ []gml.Value) (gml.Value, error) {
		return gml.FromBool(tf.eof()), nil
	}))
	k.registerFixed("file_text_write_string", 2, withTextFile("file_text_write_string", func(_ *Game, _ int, tf *textFile, args []gml.Value) (gml.Value, error) {
		return gml.Value{}, tf.write(str(args[0]))
	}))
	k.registerFixed("file_text_write_real", 2, withTextFile("file_text_write_real", func(_ *Game, _ int, tf *textFile, args []gml.Value) (gml.Value, error) {
		return gml.Value{}, tf.write(" " + args[0].Real().String())
	}))
	k.registerFixed("file_text_writeln", 1, withTextFile("file_text_writeln", func(_ *Game, _ int, tf *textFile, _ []gml.Value) (gml.Value, error) {
		return gml.Value{}, tf.write("\r\n")
	}))

	k.registerFixed("file_exists", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		path, err := g.resolvePath(str(args[0]))
		if err != nil {
			return gml.Value{}, err
		}
		fi, err := os.Stat(path)
		return gml.FromBool(err == nil && !fi.IsDir()), nil
	})
	k.registerFixed("file_delete", 1, func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		path, err := g.resolvePath(str(args[0]))
		if err != nil {
			return gml.Value{}, err
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return gml.Value{}, gml.NewFunctionError("file_delete", err.Error())
		}
		return gml.Value{}, nil
	})
}

// withTextFile resolves the first argument to an open text file and passes
// the remaining arguments on. Failures surface as function errors.
func withTextFile(name string, fn func(g *Game, id int, tf *textFile, args []gml.Value) (gml.Value, error)) KernelFunc {
	return func(g *Game, _ *Context, args []gml.Value) (gml.Value, error) {
		id := int(args[0].Round())
		tf, err := g.files.get(id)
		if err != nil {
			return gml.Value{}, gml.NewFunctionError(name, err.Error())
		}
		v, err := fn(g, id, tf, args[1:])
		if err != nil {
			var gerr *gml.Error
			if errors.As(err, &gerr) {
				return gml.Value{}, err
			}
			return gml.Value{}, gml.NewFunctionError(name, err.Error())
		}
		return v, nil
	}
}
