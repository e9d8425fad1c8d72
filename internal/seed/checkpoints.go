// Package seed holds the season's static master checkpoint list. It is only
// ever written to the catalog once, by CatalogService.Seed on an empty store.
package seed

import "github.com/buildseason/roadmap-api/internal/models"

// Checkpoints is the master roadmap for the current build season, in display
// order. Build stages carry named role assignments (HasRoles); planning and
// testing stages do not.
var Checkpoints = []models.Checkpoint{
	{
		Title:       "Build 1",
		Subtitle:    "Holonomic Drive",
		Description: "Build chassis frame, install motors, and attach mecanum wheels.",
		Color:       "#00C853",
		HasRoles:    true,
		SubTasks: []string{
			"Build chassis frame",
			"Install 4 motors",
			"Attach mecanum wheels",
			"QC: Check wheel X pattern & frame squareness.",
		},
		Resources: []models.Resource{
			{Label: "Pages 4-23", URL: "#"},
		},
	},
	{
		Title:       "Planning",
		Subtitle:    "Gantt Chart",
		Description: "Make a copy of the Gantt chart and assign tasks. Due April 1st.",
		Color:       "#7269be",
		SubTasks: []string{
			"Complete Gantt Chart",
			"Add link to Engineering Journal",
		},
		Resources: []models.Resource{
			{Label: "Video: Gantt Chart", URL: "#"},
		},
	},
	{
		Title:       "Testing 1",
		Subtitle:    "Drivetrain",
		Description: "Watch the videos for an introduction to various tests.",
		Color:       "#FF3D00",
		SubTasks: []string{
			"Connect Brain and Battery",
			"Pairing Controller",
			"Sample Drivetrain Code",
		},
		Resources: []models.Resource{
			{Label: "Wiring Diagram", URL: "#"},
			{Label: "Pairing Controller", URL: "#"},
			{Label: "Github Repo", URL: "#"},
		},
	},
	{
		Title:       "Build 2",
		Subtitle:    "Indexer & Tower Base",
		Description: "Assemble the lower motor gearbox and install the base of the conveyor tower.",
		Color:       "#00C853",
		HasRoles:    true,
		SubTasks: []string{
			"Build mechanism",
			"Install",
		},
		Resources: []models.Resource{
			{Label: "Pages 24-31", URL: "#"},
		},
	},
	{
		Title:       "Testing 2",
		Subtitle:    "Code motor limits",
		Description: "Modify code to incorporate new motor. Determine stopping limits.",
		Color:       "#FF3D00",
		SubTasks: []string{
			"Update Code",
		},
		Resources: []models.Resource{
			{Label: "Video: Motor Limits", URL: "#"},
		},
	},
	{
		Title:       "Build 3",
		Subtitle:    "Top Lift Motor",
		Description: "Assemble chains for drivetrain. Install the top lift motor.",
		Color:       "#00C853",
		HasRoles:    true,
		SubTasks: []string{
			"Assemble drivetrain chains",
			"Mount top lift motor",
		},
		Resources: []models.Resource{
			{Label: "Pages 32-49", URL: "#"},
		},
	},
	{
		Title:       "Build 4",
		Subtitle:    "Intake Arms & Paddles",
		Description: "Construct the fold-out intake arms and attach the intake flap chains.",
		Color:       "#00C853",
		HasRoles:    true,
		SubTasks: []string{
			"Assemble chains",
			"Mount intake",
		},
		Resources: []models.Resource{
			{Label: "Pages 50-66", URL: "#"},
		},
	},
	{
		Title:       "Testing 3",
		Subtitle:    "Box Fit",
		Description: "Without power, test the mechanism with boxes.",
		Color:       "#FF3D00",
		SubTasks: []string{
			"Complete test",
		},
		Resources: []models.Resource{
			{Label: "None", URL: "#"},
		},
	},
	{
		Title:       "Build 5",
		Subtitle:    "Finalize Assembly",
		Description: "Final cable management, battery checks, and driver practice. Deadline May 1st.",
		Color:       "#00C853",
		HasRoles:    true,
		SubTasks: []string{
			"Cable management",
			"Final assembly",
			"Install tensioning rubber bands",
		},
		Resources: []models.Resource{
			{Label: "Pages 66-71", URL: "#"},
		},
	},
}
