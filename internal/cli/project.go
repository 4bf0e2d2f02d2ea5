package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"taskman/internal/cli/styles"
	"taskman/internal/models"
	projectservice "taskman/internal/services/project"
	"taskman/internal/validation"
)

// ProjectCmd builds the `project` command group
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(projectAddCmd())
	cmd.AddCommand(projectListCmd())
	cmd.AddCommand(projectShowCmd())
	cmd.AddCommand(projectUpdateCmd())
	cmd.AddCommand(projectDeleteCmd())

	return cmd
}

func projectAddCmd() *cobra.Command {
	var (
		name        string
		description string
		startDate   string
		endDate     string
		manager     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new project",
		Long: `Add a new project with an optional date window and manager.

Examples:
  taskman project add --name="Website Redesign"

  taskman project add --name="Website Redesign" \
    --start-date=2026-09-01 --end-date=2026-12-01 \
    --manager=ana@example.com

  # Quiet mode for bash capture
  PROJECT_ID=$(taskman project add --name="Website Redesign" --quiet)
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			if ok, msg := validation.Required(name, "name"); !ok {
				failValidation(formatter, msg)
			}
			if ok, msg := validation.Length(name, 0, 100, "name"); !ok {
				failValidation(formatter, msg)
			}
			if startDate != "" {
				if ok, msg := validation.Date(startDate); !ok {
					failValidation(formatter, msg)
				}
			}
			if endDate != "" {
				if ok, msg := validation.Date(endDate); !ok {
					failValidation(formatter, msg)
				}
			}
			if manager != "" {
				if ok, msg := validation.Email(manager); !ok {
					failValidation(formatter, msg)
				}
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			req := projectservice.CreateProjectRequest{
				Name:        name,
				Description: description,
				StartDate:   parseDate(startDate),
				EndDate:     parseDate(endDate),
			}
			if manager != "" {
				managerID, err := resolveUserEmail(ctx, cli, manager)
				if err != nil {
					fail(formatter, err)
				}
				req.ManagerID = &managerID
			}

			project, err := cli.App.ProjectService.CreateProject(ctx, req)
			if err != nil {
				fail(formatter, err)
			}

			return formatter.SuccessID(project.ID, projectJSON(project),
				fmt.Sprintf("Project '%s' added (ID: %d)", project.Name, project.ID))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&manager, "manager", "", "Manager's email")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	return cmd
}

func projectListCmd() *cobra.Command {
	var (
		active    bool
		completed bool
		upcoming  bool
		manager   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long: `List projects ordered by name.

The date filters use the project's date window: --active shows projects
running today, --completed shows projects whose end date has passed, and
--upcoming shows projects starting after today.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			set := 0
			for _, on := range []bool{active, completed, upcoming, manager != ""} {
				if on {
					set++
				}
			}
			if set > 1 {
				failValidation(formatter, "only one of --active, --completed, --upcoming and --manager may be used")
			}
			if manager != "" {
				if ok, msg := validation.Email(manager); !ok {
					failValidation(formatter, msg)
				}
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			var projects []*models.Project
			switch {
			case active:
				projects, err = cli.App.ProjectService.GetActiveProjects(ctx)
			case completed:
				projects, err = cli.App.ProjectService.GetCompletedProjects(ctx)
			case upcoming:
				projects, err = cli.App.ProjectService.GetUpcomingProjects(ctx)
			case manager != "":
				var managerID int64
				managerID, err = resolveUserEmail(ctx, cli, manager)
				if err != nil {
					fail(formatter, err)
				}
				projects, err = cli.App.ProjectService.GetProjectsByManager(ctx, managerID)
			default:
				projects, err = cli.App.ProjectService.GetAllProjects(ctx)
			}
			if err != nil {
				fail(formatter, err)
			}

			if formatter.Quiet {
				for _, p := range projects {
					fmt.Printf("%d\n", p.ID)
				}
				return nil
			}

			data := make([]map[string]any, 0, len(projects))
			for _, p := range projects {
				data = append(data, projectJSON(p))
			}
			if done, err := formatter.JSONData(data); done {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found")
				return nil
			}
			fmt.Println(styles.TitleStyle.Render(fmt.Sprintf("Projects (%d)", len(projects))))
			for _, p := range projects {
				fmt.Printf("  %s %s%s\n",
					styles.SubtleStyle.Render(fmt.Sprintf("[%d]", p.ID)),
					p.Name,
					styles.SubtleStyle.Render(projectWindow(p)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&active, "active", false, "Only projects running today")
	cmd.Flags().BoolVar(&completed, "completed", false, "Only projects whose end date has passed")
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "Only projects starting after today")
	cmd.Flags().StringVar(&manager, "manager", "", "Only projects managed by this email")

	return cmd
}

func projectShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project's details and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			id, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid project id %q", args[0]))
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			project, err := cli.App.ProjectService.GetProjectByID(ctx, id)
			if err != nil {
				fail(formatter, err)
			}
			tasks, err := cli.App.TaskService.GetTasksByProject(ctx, id)
			if err != nil {
				fail(formatter, err)
			}

			if formatter.Quiet {
				fmt.Printf("%d\n", project.ID)
				return nil
			}
			if done, err := formatter.JSONData(map[string]any{
				"project":    projectJSON(project),
				"task_count": len(tasks),
			}); done {
				return err
			}

			fmt.Println(styles.TitleStyle.Render(project.Name) + " " +
				styles.SubtleStyle.Render(fmt.Sprintf("#%d", project.ID)))
			if project.Description != "" {
				fmt.Printf("  %s\n", project.Description)
			}
			if window := projectWindow(project); window != "" {
				fmt.Printf("  %s%s\n", styles.LabelStyle.Render("Window:"), window)
			}
			if project.ManagerID != nil {
				fmt.Printf("  %s %d\n", styles.LabelStyle.Render("Manager:"), *project.ManagerID)
			}
			fmt.Printf("  %s %d\n", styles.LabelStyle.Render("Tasks:"), len(tasks))
			for _, t := range tasks {
				fmt.Printf("    %s %s %s\n",
					styles.SubtleStyle.Render(fmt.Sprintf("[%d]", t.ID)),
					t.Title,
					styles.SubtleStyle.Render("("+t.Status+")"))
			}
			return nil
		},
	}

	return cmd
}

func projectUpdateCmd() *cobra.Command {
	var (
		name        string
		description string
		startDate   string
		endDate     string
		manager     string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Long:  "Update a project. Only the provided flags change; omitted fields keep their value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			id, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid project id %q", args[0]))
			}

			req := projectservice.UpdateProjectRequest{ID: id}
			if cmd.Flags().Changed("name") {
				if ok, msg := validation.Required(name, "name"); !ok {
					failValidation(formatter, msg)
				}
				if ok, msg := validation.Length(name, 0, 100, "name"); !ok {
					failValidation(formatter, msg)
				}
				req.Name = &name
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("start-date") {
				if ok, msg := validation.Date(startDate); !ok {
					failValidation(formatter, msg)
				}
				req.StartDate = parseDate(startDate)
			}
			if cmd.Flags().Changed("end-date") {
				if ok, msg := validation.Date(endDate); !ok {
					failValidation(formatter, msg)
				}
				req.EndDate = parseDate(endDate)
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			if cmd.Flags().Changed("manager") {
				if ok, msg := validation.Email(manager); !ok {
					failValidation(formatter, msg)
				}
				managerID, err := resolveUserEmail(ctx, cli, manager)
				if err != nil {
					fail(formatter, err)
				}
				req.ManagerID = &managerID
			}

			if req.Name == nil && req.Description == nil && req.StartDate == nil &&
				req.EndDate == nil && req.ManagerID == nil {
				failValidation(formatter, "nothing to update: provide at least one field flag")
			}

			project, err := cli.App.ProjectService.UpdateProject(ctx, req)
			if err != nil {
				fail(formatter, err)
			}

			return formatter.SuccessID(project.ID, projectJSON(project),
				fmt.Sprintf("Project %d updated", project.ID))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&startDate, "start-date", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&manager, "manager", "", "New manager's email")

	return cmd
}

func projectDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Long: `Delete a project by id.

Tasks in the project survive; their project reference is cleared.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			id, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid project id %q", args[0]))
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			if !force && !formatter.Quiet && !formatter.JSON {
				project, err := cli.App.ProjectService.GetProjectByID(ctx, id)
				if err != nil {
					fail(formatter, err)
				}
				if !confirm(fmt.Sprintf("Delete project #%d '%s'?", id, project.Name)) {
					fmt.Println("Cancelled")
					return nil
				}
			}

			found, err := cli.App.ProjectService.DeleteProject(ctx, id)
			if err != nil {
				fail(formatter, err)
			}
			if !found {
				fail(formatter, projectservice.ErrProjectNotFound)
			}

			return formatter.SuccessID(id, map[string]any{"id": id, "deleted": true},
				fmt.Sprintf("Project %d deleted", id))
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

// resolveUserEmail turns an email flag into a user id
func resolveUserEmail(ctx context.Context, cli *CLI, email string) (int64, error) {
	user, err := cli.App.UserService.GetUserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// projectWindow renders the project's date range for list output
func projectWindow(p *models.Project) string {
	if p.StartDate == nil && p.EndDate == nil {
		return ""
	}
	start, end := "...", "..."
	if p.StartDate != nil {
		start = p.StartDate.Format(models.DateFormat)
	}
	if p.EndDate != nil {
		end = p.EndDate.Format(models.DateFormat)
	}
	return fmt.Sprintf(" %s to %s", start, end)
}

func projectJSON(p *models.Project) map[string]any {
	data := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"start_date":  nil,
		"end_date":    nil,
		"manager_id":  nil,
		"created_at":  p.CreatedAt.Format(models.TimestampFormat),
	}
	if p.StartDate != nil {
		data["start_date"] = p.StartDate.Format(models.DateFormat)
	}
	if p.EndDate != nil {
		data["end_date"] = p.EndDate.Format(models.DateFormat)
	}
	if p.ManagerID != nil {
		data["manager_id"] = *p.ManagerID
	}
	return data
}
