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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingokit/internal/app"
	"github.com/eslsoft/lingokit/internal/entity"
)

var (
	assessProfilePath string
	assessFeaturePath string
)

// assessCmd evaluates one user profile against one feature definition and
// prints the readiness verdict plus the user-facing message.
var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess feature readiness for a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := app.Initialize()
		if err != nil {
			return err
		}

		var profile entity.UserProfile
		if err := readJSON(assessProfilePath, &profile); err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		var feature entity.FeatureDefinition
		if err := readJSON(assessFeaturePath, &feature); err != nil {
			return fmt.Errorf("load feature: %w", err)
		}

		score, err := container.Coordinator.AssessFeatureReadiness(&profile, &feature)
		if err != nil {
			return err
		}
		message, err := container.Coordinator.RenderUnlockMessage(score, &feature, &profile)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(map[string]any{
			"score":   score,
			"message": message,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)
	assessCmd.Flags().StringVar(&assessProfilePath, "profile", "profile.json", "path to the user profile JSON")
	assessCmd.Flags().StringVar(&assessFeaturePath, "feature", "feature.json", "path to the feature definition JSON")
	_ = assessCmd.MarkFlagRequired("profile")
	_ = assessCmd.MarkFlagRequired("feature")
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
