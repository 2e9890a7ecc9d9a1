package lunlib

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/lunfardo-lang/lunfardo/internal/lunerr"
	"github.com/lunfardo-lang/lunfardo/internal/lunfardo"
	"github.com/lunfardo-lang/lunfardo/internal/lunlex"
)

func init() {
	lunfardo.RegisterLibrary("lacompu", initLaCompu)
}

// initLaCompu is the LibraryHandler registered for "lacompu", grounded on
// LaCompu/the *_adapter functions in the original's lacompu.py: a thin
// Builtin wrapper per os-package operation, plus the constant-valued
// properties (name/sep/pathsep/curdir/pardir/environ) as zero-arg Curros
// rather than bare fields, since Lunfardo has no attribute-on-module
// syntax beyond method-style calls.
func initLaCompu(moduleCtx *lunfardo.Context, start, end lunlex.Position, callerCtx *lunfardo.Context) *lunerr.Error {
	bind := func(name string, params []string, fn lunfardo.BuiltinFunc) {
		moduleCtx.Env.Set(name, lunfardo.NewBuiltin(name, params, fn))
	}

	bind("name", nil, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		return lunfardo.NewString(runtime.GOOS), nil
	})
	bind("sep", nil, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		return lunfardo.NewString(string(os.PathSeparator)), nil
	})
	bind("pathsep", nil, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		return lunfardo.NewString(string(os.PathListSeparator)), nil
	})
	bind("curdir", nil, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		return lunfardo.NewString("."), nil
	})
	bind("pardir", nil, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		return lunfardo.NewString(".."), nil
	})
	bind("environ", nil, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		dict := lunfardo.NewDict()
		for _, kv := range os.Environ() {
			for i := 0; i < len(kv); i++ {
				if kv[i] == '=' {
					_ = dict.Set(lunfardo.NewString(kv[:i]), lunfardo.NewString(kv[i+1:]))
					break
				}
			}
		}
		return dict, nil
	})

	bind("chdir", []string{"path"}, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		path, ok := fetch(ctx, "path").(*lunfardo.String)
		if !ok {
			return nil, typeErr(fetch(ctx, "path"), "el argumento debe ser de tipo chamuyo")
		}
		if err := os.Chdir(path.Value); err != nil {
			return nil, hostErr(path, err)
		}
		return lunfardo.NilValue, nil
	})

	bind("getcwd", nil, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, lunerr.New(lunerr.TagFileNotFound, start, end, err.Error())
		}
		return lunfardo.NewString(cwd), nil
	})

	bind("getenv", []string{"key"}, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		key, ok := fetch(ctx, "key").(*lunfardo.String)
		if !ok {
			return nil, typeErr(fetch(ctx, "key"), "el argumento debe ser de tipo chamuyo")
		}
		return lunfardo.NewString(os.Getenv(key.Value)), nil
	})

	bind("listdir", []string{"path"}, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		path, ok := fetch(ctx, "path").(*lunfardo.String)
		if !ok {
			return nil, typeErr(fetch(ctx, "path"), "el argumento debe ser de tipo chamuyo")
		}
		entries, err := os.ReadDir(path.Value)
		if err != nil {
			return nil, hostErr(path, err)
		}
		elements := make([]lunfardo.Value, len(entries))
		for i, e := range entries {
			elements[i] = lunfardo.NewString(e.Name())
		}
		return lunfardo.NewList(elements), nil
	})

	bind("mkdir", []string{"path"}, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		path, ok := fetch(ctx, "path").(*lunfardo.String)
		if !ok {
			return nil, typeErr(fetch(ctx, "path"), "el argumento debe ser de tipo chamuyo")
		}
		if err := os.Mkdir(path.Value, 0o755); err != nil {
			return nil, hostErr(path, err)
		}
		return lunfardo.NilValue, nil
	})

	bind("makedirs", []string{"path", "exist_ok"}, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		path, ok := fetch(ctx, "path").(*lunfardo.String)
		if !ok {
			return nil, typeErr(fetch(ctx, "path"), "el argumento debe ser de tipo chamuyo")
		}
		existOk, _ := fetch(ctx, "exist_ok").(*lunfardo.Boolean)
		err := os.MkdirAll(path.Value, 0o755)
		if err != nil && !(existOk != nil && existOk.Value && os.IsExist(err)) {
			return nil, hostErr(path, err)
		}
		return lunfardo.NilValue, nil
	})

	bind("remove", []string{"path"}, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		path, ok := fetch(ctx, "path").(*lunfardo.String)
		if !ok {
			return nil, typeErr(fetch(ctx, "path"), "el argumento debe ser de tipo chamuyo")
		}
		if err := os.Remove(path.Value); err != nil {
			return nil, hostErr(path, err)
		}
		return lunfardo.NilValue, nil
	})

	bind("rmdir", []string{"path"}, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		path, ok := fetch(ctx, "path").(*lunfardo.String)
		if !ok {
			return nil, typeErr(fetch(ctx, "path"), "el argumento debe ser de tipo chamuyo")
		}
		if err := os.Remove(path.Value); err != nil {
			return nil, hostErr(path, err)
		}
		return lunfardo.NilValue, nil
	})

	bind("rename", []string{"old", "new"}, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		oldPath, ok := fetch(ctx, "old").(*lunfardo.String)
		if !ok {
			return nil, typeErr(fetch(ctx, "old"), "el argumento debe ser de tipo chamuyo")
		}
		newPath, ok := fetch(ctx, "new").(*lunfardo.String)
		if !ok {
			return nil, typeErr(fetch(ctx, "new"), "el argumento debe ser de tipo chamuyo")
		}
		if err := os.Rename(oldPath.Value, newPath.Value); err != nil {
			return nil, hostErr(oldPath, err)
		}
		return lunfardo.NilValue, nil
	})

	bind("system", []string{"command"}, func(ctx *lunfardo.Context) (lunfardo.Value, *lunerr.Error) {
		command, ok := fetch(ctx, "command").(*lunfardo.String)
		if !ok {
			return nil, typeErr(fetch(ctx, "command"), "el argumento debe ser de tipo chamuyo")
		}
		shell, flag := "/bin/sh", "-c"
		if runtime.GOOS == "windows" {
			shell, flag = "cmd", "/C"
		}
		cmd := exec.Command(shell, flag, command.Value)
		cmd.Stdout = lunfardo.Stdout
		cmd.Stderr = lunfardo.Stdout
		code := 0
		if err := cmd.Run(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				code = exitErr.ExitCode()
			} else {
				code = -1
			}
		}
		return lunfardo.NewInt(int64(code)), nil
	})

	return nil
}

func hostErr(v lunfardo.Value, err error) *lunerr.Error {
	return lunerr.NewRuntime(lunerr.TagFileNotFound, v.Start(), v.End(), err.Error(), nil)
}
