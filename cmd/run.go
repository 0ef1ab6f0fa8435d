/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingokit/internal/app"
	"github.com/eslsoft/lingokit/internal/entity"
	"github.com/eslsoft/lingokit/internal/scheduler"
)

// sessionEvent is one telemetry line on stdin.
type sessionEvent struct {
	UserID  string                `json:"user_id"`
	Session entity.SessionSummary `json:"session"`
}

// runCmd consumes JSON session telemetry from stdin (one event per line)
// and runs periodic adaptation cycles for every user seen, until EOF or
// SIGINT/SIGTERM.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Consume session telemetry from stdin and adapt continuously",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := app.Initialize()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		coord := container.Coordinator
		log := container.Logger

		// The coordinator is single-writer; one mutex serializes the
		// stdin reader and the tick loop.
		var mu sync.Mutex
		users := map[string]struct{}{}

		s := scheduler.New(container.Config.Engine.TickInterval, func(now time.Time) {
			mu.Lock()
			defer mu.Unlock()
			for userID := range users {
				if err := coord.Tick(userID, nil); err != nil {
					log.WithError(err).WithField("user", userID).Warn("adaptation cycle failed")
				}
			}
		}, log)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = s.Run(ctx)
		}()

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if ctx.Err() != nil {
				break
			}
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var ev sessionEvent
			if err := json.Unmarshal(line, &ev); err != nil {
				log.WithError(err).Warn("skipping malformed event")
				continue
			}
			mu.Lock()
			if err := coord.RecordSession(ev.UserID, ev.Session); err != nil {
				log.WithError(err).WithField("user", ev.UserID).Warn("skipping event")
			} else {
				users[ev.UserID] = struct{}{}
			}
			mu.Unlock()
		}

		stop()
		<-done
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
