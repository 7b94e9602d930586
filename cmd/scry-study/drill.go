package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-study/internal/drill"
	"github.com/phrazzld/scry-study/internal/platform/filestore"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/service/study"
)

// localUser identifies the single user of file-backed drills.
var localUser = uuid.NewSHA1(uuid.NameSpaceURL, []byte("scry-study:local"))

func newDrillCmd(a *app) *cobra.Command {
	var (
		kind    string
		count   int
		filters []string
		user    string
	)

	cmd := &cobra.Command{
		Use:   "drill <deck> <direction>",
		Short: "Study a deck in the terminal",
		Long: `Study a deck in the terminal. Progress is kept in drill.data_dir.

Examples:
  scry-study drill declension produce
  scry-study drill vocabulary de-en --filter level=a1 --filter level=a2
  scry-study drill conjugation produce --kind extra_new --count 5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := study.ParseKind(kind)
			if err != nil {
				return err
			}
			parsed, err := parseFilters(filters)
			if err != nil {
				return err
			}
			userID := localUser
			if user != "" {
				if userID, err = uuid.Parse(user); err != nil {
					return fmt.Errorf("invalid user id %q", user)
				}
			}

			rt, err := a.studyRuntime()
			if err != nil {
				return err
			}

			// The drill owns the terminal, so logs go to a file next to the data.
			dir := a.cfg.Drill.DataDir
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create data dir: %w", err)
			}
			logFile, err := os.OpenFile(filepath.Join(dir, "drill.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open drill log: %w", err)
			}
			defer logFile.Close()
			log := logger.New(logFile, a.cfg.Server.LogLevel)

			decks := study.BuiltinDecks(rt.catalogs, rt.model,
				filestore.NewReviewStoreRepository[int](dir, log),
				filestore.NewReviewStoreRepository[string](dir, log),
			)
			svc := study.NewService(decks, filestore.NewSettingsStore(dir), rt.clock, a.cfg.Study, log)

			_, err = drill.New(svc, userID, cmd.InOrStdin(), cmd.OutOrStdout(), log).Run(cmd.Context(), study.StartRequest{
				Deck:      args[0],
				Direction: args[1],
				Kind:      k,
				Count:     count,
				Filters:   parsed,
			})
			if errors.Is(err, drill.ErrQuit) {
				log.Info("drill quit early", slog.String("deck", args[0]))
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "regular", "session kind: regular, practice_ahead or extra_new")
	cmd.Flags().IntVar(&count, "count", 0, "cap for practice_ahead and extra_new sessions")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "deck filter as key=value, repeatable")
	cmd.Flags().StringVar(&user, "user", "", "user id to study as")
	return cmd
}

// parseFilters turns key=value flags into filter values.
func parseFilters(flags []string) (map[string][]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	out := make(map[string][]string, len(flags))
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, want key=value", f)
		}
		out[key] = append(out[key], value)
	}
	return out, nil
}
