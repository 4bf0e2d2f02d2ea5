package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"taskman/internal/cli/styles"
	"taskman/internal/database"
	"taskman/internal/models"
	taskservice "taskman/internal/services/task"
	"taskman/internal/validation"
)

// TaskCmd builds the `task` command group
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(taskAddCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskShowCmd())
	cmd.AddCommand(taskUpdateCmd())
	cmd.AddCommand(taskDeleteCmd())
	cmd.AddCommand(taskTransitionCmd("complete", "Mark a task completed",
		func(ctx context.Context, cli *CLI, id int64) (*models.Task, error) {
			return cli.App.TaskService.CompleteTask(ctx, id)
		}))
	cmd.AddCommand(taskTransitionCmd("start", "Mark a task in progress",
		func(ctx context.Context, cli *CLI, id int64) (*models.Task, error) {
			return cli.App.TaskService.StartTask(ctx, id)
		}))
	cmd.AddCommand(taskTransitionCmd("reset", "Return a task to pending",
		func(ctx context.Context, cli *CLI, id int64) (*models.Task, error) {
			return cli.App.TaskService.ResetTask(ctx, id)
		}))
	cmd.AddCommand(taskOverdueCmd())
	cmd.AddCommand(taskUpcomingCmd())
	cmd.AddCommand(taskCommentCmd())

	return cmd
}

func taskAddCmd() *cobra.Command {
	var (
		title       string
		description string
		status      string
		priority    string
		dueDate     string
		assignee    string
		project     int64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new task",
		Long: `Add a new task. Status defaults to pending and priority to medium.

Examples:
  taskman task add --title="Fix login bug"

  taskman task add --title="Fix login bug" --priority=high \
    --due-date=2026-09-15 --assignee=ana@example.com --project=1

  # Quiet mode for bash capture
  TASK_ID=$(taskman task add --title="Fix login bug" --quiet)
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			if ok, msg := validation.Required(title, "title"); !ok {
				failValidation(formatter, msg)
			}
			if ok, msg := validation.Length(title, 0, 255, "title"); !ok {
				failValidation(formatter, msg)
			}
			if status != "" {
				if ok, msg := validation.OneOf(status, models.Statuses, "status"); !ok {
					failValidation(formatter, msg)
				}
			}
			prio := 0
			if priority != "" {
				p, err := ParsePriority(priority)
				if err != nil {
					failValidation(formatter, err.Error())
				}
				prio = p
			}
			if dueDate != "" {
				if ok, msg := validation.Date(dueDate); !ok {
					failValidation(formatter, msg)
				}
			}
			if assignee != "" {
				if ok, msg := validation.Email(assignee); !ok {
					failValidation(formatter, msg)
				}
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			req := taskservice.CreateTaskRequest{
				Title:       title,
				Description: description,
				Status:      status,
				Priority:    prio,
				DueDate:     parseDate(dueDate),
			}
			if assignee != "" {
				assigneeID, err := resolveUserEmail(ctx, cli, assignee)
				if err != nil {
					fail(formatter, err)
				}
				req.AssignedTo = &assigneeID
			}
			if cmd.Flags().Changed("project") {
				req.ProjectID = &project
			}

			task, err := cli.App.TaskService.CreateTask(ctx, req)
			if err != nil {
				fail(formatter, err)
			}

			return formatter.SuccessID(task.ID, taskJSON(task),
				fmt.Sprintf("Task '%s' added (ID: %d)", task.Title, task.ID))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", "Initial status: pending, in_progress or completed")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: high, medium, low or 1-3")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee's email")
	cmd.Flags().Int64Var(&project, "project", 0, "Project id")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	return cmd
}

func taskListCmd() *cobra.Command {
	var (
		user    string
		project int64
		status  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks ordered by priority then due date, with tasks lacking a
due date last. Filters combine with AND.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			if user != "" {
				if ok, msg := validation.Email(user); !ok {
					failValidation(formatter, msg)
				}
			}
			if status != "" {
				if ok, msg := validation.OneOf(status, models.Statuses, "status"); !ok {
					failValidation(formatter, msg)
				}
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			tasks, err := cli.App.TaskService.ListTasks(ctx, database.TaskFilter{
				AssigneeEmail: user,
				ProjectID:     project,
				Status:        status,
			})
			if err != nil {
				fail(formatter, err)
			}

			return renderTaskList(formatter, tasks)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Only tasks assigned to this email")
	cmd.Flags().Int64Var(&project, "project", 0, "Only tasks in this project")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")

	return cmd
}

func taskShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task's details and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			id, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid task id %q", args[0]))
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			task, err := cli.App.TaskService.GetTaskByID(ctx, id)
			if err != nil {
				fail(formatter, err)
			}
			comments, err := cli.App.TaskService.GetComments(ctx, id)
			if err != nil {
				fail(formatter, err)
			}

			if formatter.Quiet {
				fmt.Printf("%d\n", task.ID)
				return nil
			}
			commentData := make([]map[string]any, 0, len(comments))
			for _, c := range comments {
				commentData = append(commentData, commentJSON(c))
			}
			if done, err := formatter.JSONData(map[string]any{
				"task":     taskJSON(task),
				"comments": commentData,
			}); done {
				return err
			}

			fmt.Println(styles.TitleStyle.Render(task.Title) + " " +
				styles.SubtleStyle.Render(fmt.Sprintf("#%d", task.ID)))
			if task.Description != "" {
				fmt.Printf("  %s\n", task.Description)
			}
			fmt.Printf("  %s %s\n", styles.LabelStyle.Render("Status:"), task.Status)
			fmt.Printf("  %s %s\n", styles.LabelStyle.Render("Priority:"), PriorityName(task.Priority))
			if task.DueDate != nil {
				due := task.DueDate.Format(models.DateFormat)
				if task.IsOverdue(time.Now()) {
					due += " " + styles.WarningStyle.Render("(overdue)")
				}
				fmt.Printf("  %s %s\n", styles.LabelStyle.Render("Due:"), due)
			}
			if task.AssignedTo != nil {
				fmt.Printf("  %s %d\n", styles.LabelStyle.Render("Assignee:"), *task.AssignedTo)
			}
			if task.ProjectID != nil {
				fmt.Printf("  %s %d\n", styles.LabelStyle.Render("Project:"), *task.ProjectID)
			}
			fmt.Printf("  %s %s\n", styles.LabelStyle.Render("Updated:"),
				task.UpdatedAt.Format(models.TimestampFormat))
			if len(comments) > 0 {
				fmt.Printf("  %s\n", styles.LabelStyle.Render("Comments:"))
				for _, c := range comments {
					fmt.Printf("    %s %s %s\n",
						styles.SubtleStyle.Render(fmt.Sprintf("[%d]", c.ID)),
						c.Content,
						styles.SubtleStyle.Render(c.CreatedAt.Format(models.DateFormat)))
				}
			}
			return nil
		},
	}

	return cmd
}

func taskUpdateCmd() *cobra.Command {
	var (
		title       string
		description string
		status      string
		priority    string
		dueDate     string
		assignee    string
		project     int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Long:  "Update a task. Only the provided flags change; omitted fields keep their value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			id, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid task id %q", args[0]))
			}

			req := taskservice.UpdateTaskRequest{ID: id}
			changed := false
			if cmd.Flags().Changed("title") {
				if ok, msg := validation.Required(title, "title"); !ok {
					failValidation(formatter, msg)
				}
				if ok, msg := validation.Length(title, 0, 255, "title"); !ok {
					failValidation(formatter, msg)
				}
				req.Title = &title
				changed = true
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
				changed = true
			}
			if cmd.Flags().Changed("status") {
				if ok, msg := validation.OneOf(status, models.Statuses, "status"); !ok {
					failValidation(formatter, msg)
				}
				req.Status = &status
				changed = true
			}
			if cmd.Flags().Changed("priority") {
				p, err := ParsePriority(priority)
				if err != nil {
					failValidation(formatter, err.Error())
				}
				req.Priority = &p
				changed = true
			}
			if cmd.Flags().Changed("due-date") {
				if ok, msg := validation.Date(dueDate); !ok {
					failValidation(formatter, msg)
				}
				req.DueDate = parseDate(dueDate)
				changed = true
			}
			if cmd.Flags().Changed("project") {
				req.ProjectID = &project
				changed = true
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			if cmd.Flags().Changed("assignee") {
				if ok, msg := validation.Email(assignee); !ok {
					failValidation(formatter, msg)
				}
				assigneeID, err := resolveUserEmail(ctx, cli, assignee)
				if err != nil {
					fail(formatter, err)
				}
				req.AssignedTo = &assigneeID
				changed = true
			}

			if !changed {
				failValidation(formatter, "nothing to update: provide at least one field flag")
			}

			task, err := cli.App.TaskService.UpdateTask(ctx, req)
			if err != nil {
				fail(formatter, err)
			}

			return formatter.SuccessID(task.ID, taskJSON(task),
				fmt.Sprintf("Task %d updated", task.ID))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status: pending, in_progress or completed")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority: high, medium, low or 1-3")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "New assignee's email")
	cmd.Flags().Int64Var(&project, "project", 0, "New project id")

	return cmd
}

func taskDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long: `Delete a task by id. The task's comments are removed with it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			id, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid task id %q", args[0]))
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			if !force && !formatter.Quiet && !formatter.JSON {
				task, err := cli.App.TaskService.GetTaskByID(ctx, id)
				if err != nil {
					fail(formatter, err)
				}
				if !confirm(fmt.Sprintf("Delete task #%d '%s'?", id, task.Title)) {
					fmt.Println("Cancelled")
					return nil
				}
			}

			found, err := cli.App.TaskService.DeleteTask(ctx, id)
			if err != nil {
				fail(formatter, err)
			}
			if !found {
				fail(formatter, taskservice.ErrTaskNotFound)
			}

			return formatter.SuccessID(id, map[string]any{"id": id, "deleted": true},
				fmt.Sprintf("Task %d deleted", id))
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

// taskTransitionCmd builds one of the complete/start/reset commands.
// They differ only in the service call and the label.
func taskTransitionCmd(use, short string, transition func(context.Context, *CLI, int64) (*models.Task, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			id, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid task id %q", args[0]))
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			task, err := transition(ctx, cli, id)
			if err != nil {
				fail(formatter, err)
			}

			return formatter.SuccessID(task.ID, taskJSON(task),
				fmt.Sprintf("Task %d is now %s", task.ID, task.Status))
		},
	}
}

func taskOverdueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List overdue tasks",
		Long: `List tasks due strictly before today that are not completed,
most urgent first. A task due today is not overdue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			tasks, err := cli.App.TaskService.GetOverdueTasks(ctx)
			if err != nil {
				fail(formatter, err)
			}

			return renderTaskList(formatter, tasks)
		},
	}

	return cmd
}

func taskUpcomingCmd() *cobra.Command {
	var days string

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List tasks due soon",
		Long: `List non-completed tasks due between today and today plus --days,
both ends inclusive. With --days=0 only tasks due today are shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			if ok, msg := validation.IntRange(days, 0, 365, "days"); !ok {
				failValidation(formatter, msg)
			}
			window, _ := strconv.Atoi(days)

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			tasks, err := cli.App.TaskService.GetUpcomingTasks(ctx, window)
			if err != nil {
				fail(formatter, err)
			}

			return renderTaskList(formatter, tasks)
		},
	}

	cmd.Flags().StringVar(&days, "days", "7", "Size of the window in days (0-365)")

	return cmd
}

func taskCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage task comments",
	}

	cmd.AddCommand(commentAddCmd())
	cmd.AddCommand(commentListCmd())
	cmd.AddCommand(commentDeleteCmd())

	return cmd
}

func commentAddCmd() *cobra.Command {
	var (
		author  string
		message string
	)

	cmd := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Add a comment to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			taskID, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid task id %q", args[0]))
			}
			if ok, msg := validation.Email(author); !ok {
				failValidation(formatter, msg)
			}
			if ok, msg := validation.Required(message, "message"); !ok {
				failValidation(formatter, msg)
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			authorID, err := resolveUserEmail(ctx, cli, author)
			if err != nil {
				fail(formatter, err)
			}

			comment, err := cli.App.TaskService.AddComment(ctx, taskID, authorID, message)
			if err != nil {
				fail(formatter, err)
			}

			return formatter.SuccessID(comment.ID, commentJSON(comment),
				fmt.Sprintf("Comment %d added to task %d", comment.ID, taskID))
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Author's email (required)")
	cmd.Flags().StringVar(&message, "message", "", "Comment text (required)")
	if err := cmd.MarkFlagRequired("author"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	if err := cmd.MarkFlagRequired("message"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	return cmd
}

func commentListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <task-id>",
		Short: "List a task's comments, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			taskID, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid task id %q", args[0]))
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			comments, err := cli.App.TaskService.GetComments(ctx, taskID)
			if err != nil {
				fail(formatter, err)
			}

			if formatter.Quiet {
				for _, c := range comments {
					fmt.Printf("%d\n", c.ID)
				}
				return nil
			}

			data := make([]map[string]any, 0, len(comments))
			for _, c := range comments {
				data = append(data, commentJSON(c))
			}
			if done, err := formatter.JSONData(data); done {
				return err
			}

			if len(comments) == 0 {
				fmt.Println("No comments found")
				return nil
			}
			fmt.Println(styles.TitleStyle.Render(fmt.Sprintf("Comments (%d)", len(comments))))
			for _, c := range comments {
				fmt.Printf("  %s %s %s\n",
					styles.SubtleStyle.Render(fmt.Sprintf("[%d]", c.ID)),
					c.Content,
					styles.SubtleStyle.Render(c.CreatedAt.Format(models.TimestampFormat)))
			}
			return nil
		},
	}

	return cmd
}

func commentDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <comment-id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			id, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid comment id %q", args[0]))
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			found, err := cli.App.TaskService.DeleteComment(ctx, id)
			if err != nil {
				fail(formatter, err)
			}
			if !found {
				fail(formatter, taskservice.ErrCommentNotFound)
			}

			return formatter.SuccessID(id, map[string]any{"id": id, "deleted": true},
				fmt.Sprintf("Comment %d deleted", id))
		},
	}

	return cmd
}

// renderTaskList outputs a task slice in the active output mode
func renderTaskList(formatter *OutputFormatter, tasks []*models.Task) error {
	if formatter.Quiet {
		for _, t := range tasks {
			fmt.Printf("%d\n", t.ID)
		}
		return nil
	}

	data := make([]map[string]any, 0, len(tasks))
	for _, t := range tasks {
		data = append(data, taskJSON(t))
	}
	if done, err := formatter.JSONData(data); done {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}
	now := time.Now()
	fmt.Println(styles.TitleStyle.Render(fmt.Sprintf("Tasks (%d)", len(tasks))))
	for _, t := range tasks {
		line := fmt.Sprintf("  %s %s %s %s",
			styles.SubtleStyle.Render(fmt.Sprintf("[%d]", t.ID)),
			t.Title,
			styles.SubtleStyle.Render("("+t.Status+")"),
			styles.SubtleStyle.Render(PriorityName(t.Priority)))
		if t.DueDate != nil {
			due := "due " + t.DueDate.Format(models.DateFormat)
			if t.IsOverdue(now) {
				line += " " + styles.WarningStyle.Render(due)
			} else {
				line += " " + styles.SubtleStyle.Render(due)
			}
		}
		fmt.Println(line)
	}
	return nil
}

func taskJSON(t *models.Task) map[string]any {
	data := map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"priority":    t.Priority,
		"due_date":    nil,
		"assigned_to": nil,
		"project_id":  nil,
		"created_at":  t.CreatedAt.Format(models.TimestampFormat),
		"updated_at":  t.UpdatedAt.Format(models.TimestampFormat),
	}
	if t.DueDate != nil {
		data["due_date"] = t.DueDate.Format(models.DateFormat)
	}
	if t.AssignedTo != nil {
		data["assigned_to"] = *t.AssignedTo
	}
	if t.ProjectID != nil {
		data["project_id"] = *t.ProjectID
	}
	return data
}

func commentJSON(c *models.Comment) map[string]any {
	return map[string]any{
		"id":         c.ID,
		"content":    c.Content,
		"task_id":    c.TaskID,
		"user_id":    c.UserID,
		"created_at": c.CreatedAt.Format(models.TimestampFormat),
	}
}
