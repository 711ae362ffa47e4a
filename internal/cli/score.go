package cli

import (
	"fmt"

	"github.com/studyflowhq/studyflow/internal/config"
	"github.com/studyflowhq/studyflow/internal/priority"
)

type ScoreCmd struct {
	Contents string `arg:"" help:"YAML file with candidate study contents."`
	Weights  string `help:"YAML file with priority weight overrides."`
}

func (c *ScoreCmd) Run(ctx *Context) error {
	contents, err := config.LoadContents(c.Contents)
	if err != nil {
		return err
	}

	cfg, err := config.LoadWeights(c.Weights)
	if err != nil {
		return err
	}

	ranked := priority.Rank(contents, cfg)
	if len(ranked) == 0 {
		fmt.Println("No contents to score.")
		return nil
	}
	fmt.Print(RenderScores(ranked))
	return nil
}
