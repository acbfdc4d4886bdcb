package main

import (
	"flag"
	"os"

	"golang.org/x/term"

	"vshell"
	"vshell/config"
	"vshell/internal/util"
)

// logLevelFor maps 1..5 verbosity onto a logger level, clamping
// out-of-range values to the nearest bound.
func logLevelFor(verbose int) util.LogLevel {
	if verbose < 1 {
		verbose = 1
	}
	if verbose > 5 {
		verbose = 5
	}
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return logLvls[verbose-1]
}

func main() {
	// Parse command line arguments
	var (
		configPath string
		vfsPath    string
		scriptPath string
		promptTmpl string
		verbose    int
	)
	flag.StringVar(&configPath, "config", "", "Path to config override file (yaml or json)")
	flag.StringVar(&vfsPath, "vfs", "", "Path to VFS manifest file")
	flag.StringVar(&vfsPath, "f", "", "--vfs (shorthand)")
	flag.StringVar(&scriptPath, "script", "", "Path to startup script")
	flag.StringVar(&scriptPath, "s", "", "--script (shorthand)")
	flag.StringVar(&promptTmpl, "prompt", "", "Prompt template with {user}, {host}, {cwd} placeholders")
	flag.IntVar(&verbose, "verbose", 3, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", 3, "--verbose (shorthand)")
	flag.Parse()

	verboseSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "verbose" || f.Name == "v" {
			verboseSet = true
		}
	})

	// Initialize logger from the flag so config load failures are logged;
	// a config-file log level is applied after the merge below
	util.InitializeLogger(logLevelFor(verbose))
	logger := util.GetLogger("main")

	// Assemble config: defaults, then file overrides, then flags
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		override, err := config.LoadConfigOverrideFile(configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("config", configPath).Msg("Failed to load config file")
		}
		cfg.Merge(override)
	}
	flagOverride := config.ConfigOverride{}
	if vfsPath != "" {
		flagOverride.VFSPath = &vfsPath
	}
	if scriptPath != "" {
		flagOverride.ScriptPath = &scriptPath
	}
	if promptTmpl != "" {
		flagOverride.PromptTemplate = &promptTmpl
	}
	if verboseSet {
		flagOverride.LogLvl = &verbose
	}
	cfg.Merge(&flagOverride)

	// An explicit -verbose flag wins; otherwise a log_level from the
	// config file takes effect here
	if cfg.LogLvl != verbose {
		util.InitializeLogger(logLevelFor(cfg.LogLvl))
		logger = util.GetLogger("main")
	}

	// Launch configuration dump
	logger.Debug().
		Str("vfs", cfg.VFSPath).
		Str("script", cfg.ScriptPath).
		Str("prompt", cfg.PromptTemplate).
		Msg("Launch configuration")

	if cfg.VFSPath == "" {
		logger.Fatal().Msg("VFS manifest not specified; pass -vfs or set vfs_path in the config file")
	}

	// Build the engine and session; any manifest load failure is fatal.
	// Script and interactive modes share this one instance.
	session, err := vshell.New(cfg, os.Stdout)
	if err != nil {
		logger.Fatal().Err(err).Str("vfs", cfg.VFSPath).Msg("Failed to load VFS manifest")
	}
	info := session.Dispatcher().FS().Info()
	logger.Info().Str("session", session.ID().String()).Str("manifest", info.ManifestName).Msg("Shell emulator starting")

	// Startup script runs first when present; a missing script is skipped
	if cfg.ScriptPath != "" {
		f, err := os.Open(cfg.ScriptPath)
		switch {
		case os.IsNotExist(err):
			logger.Info().Str("script", cfg.ScriptPath).Msg("No startup script found, skipping")
		case err != nil:
			logger.Fatal().Err(err).Str("script", cfg.ScriptPath).Msg("Failed to open startup script")
		default:
			terminated, err := session.RunScript(f)
			f.Close()
			if err != nil {
				logger.Fatal().Err(err).Str("script", cfg.ScriptPath).Msg("Startup script failed")
			}
			if terminated {
				return
			}
		}
	}

	// A terminal gets the interactive loop; piped input is treated as a
	// script so every consumed line is echoed with its prompt
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if err := session.RunInteractive(os.Stdin); err != nil {
			logger.Fatal().Err(err).Msg("Interactive session failed")
		}
	} else {
		if _, err := session.RunScript(os.Stdin); err != nil {
			logger.Fatal().Err(err).Msg("Failed reading piped input")
		}
	}
}
