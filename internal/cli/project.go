package cli

import (
	"fmt"

	"github.com/piwi3910/cutstock/internal/model"
	"github.com/piwi3910/cutstock/internal/project"
	"github.com/piwi3910/cutstock/internal/solver"
)

// CmdProject groups the save and load subcommands for whole-project
// persistence.
type CmdProject struct {
	Save CmdProjectSave `command:"save" description:"Solve a demand list and save it as a project file"`
	Load CmdProjectLoad `command:"load" description:"Load and print a saved project file"`
}

// CmdProjectSave solves a demand list and writes the full project (parts,
// stock, settings, last result) to disk.
type CmdProjectSave struct {
	SharedFlags
	Name string `long:"name" description:"Project name" default:"cutstock project"`

	Args struct {
		File string `positional-arg-name:"file" description:"Project file to write" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the project save command.
func (c *CmdProjectSave) Execute(args []string) error {
	stock, parts, err := c.buildStockAndParts()
	if err != nil {
		return err
	}

	settings := c.settings()

	proj := model.NewProject(c.Name)
	proj.Stock = stock
	proj.Settings = settings
	proj.Parts = parts

	if len(parts) > 0 {
		result := solver.Optimize(parts, stock, settings)
		proj.Result = &result
		printResult(result)
	}

	if err := project.SaveProject(c.Args.File, proj); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	fmt.Printf("Saved project %q to %s\n", proj.Name, c.Args.File)
	return nil
}

// CmdProjectLoad reads back a project file and prints its last solve result.
type CmdProjectLoad struct {
	Args struct {
		File string `positional-arg-name:"file" description:"Project file to read" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the project load command.
func (c *CmdProjectLoad) Execute(args []string) error {
	proj, err := project.LoadProject(c.Args.File)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	fmt.Printf("Project %q: %d part(s), stock %dx%d mm\n", proj.Name, len(proj.Parts), proj.Stock.Width, proj.Stock.Height)
	if proj.Result != nil {
		printResult(*proj.Result)
	} else {
		fmt.Println("No saved solve result.")
	}

	return nil
}
