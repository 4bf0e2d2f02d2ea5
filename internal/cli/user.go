package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"taskman/internal/cli/styles"
	"taskman/internal/models"
	userservice "taskman/internal/services/user"
	"taskman/internal/validation"
)

// UserCmd builds the `user` command group
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(userAddCmd())
	cmd.AddCommand(userListCmd())
	cmd.AddCommand(userShowCmd())
	cmd.AddCommand(userUpdateCmd())
	cmd.AddCommand(userDeleteCmd())

	return cmd
}

func userAddCmd() *cobra.Command {
	var (
		name  string
		email string
		role  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new user",
		Long: `Add a new user with a unique email address.

Examples:
  # Member is the default role
  taskman user add --name="Ana" --email=ana@example.com

  # Managers can be referenced by projects
  taskman user add --name="Bob" --email=bob@example.com --role=manager

  # Quiet mode for bash capture
  USER_ID=$(taskman user add --name="Ana" --email=ana@example.com --quiet)
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
			if ok, msg := validation.Email(email); !ok {
				failValidation(formatter, msg)
			}
			if ok, msg := validation.OneOf(role, models.Roles, "role"); !ok {
				failValidation(formatter, msg)
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			user, err := cli.App.UserService.CreateUser(ctx, userservice.CreateUserRequest{
				Name:  name,
				Email: email,
				Role:  role,
			})
			if err != nil {
				fail(formatter, err)
			}

			return formatter.SuccessID(user.ID, userJSON(user),
				fmt.Sprintf("User '%s' added (ID: %d)", user.Name, user.ID))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "User name (required)")
	cmd.Flags().StringVar(&email, "email", "", "User email, must be unique (required)")
	cmd.Flags().StringVar(&role, "role", models.RoleMember, "User role: admin, manager or member")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	if err := cmd.MarkFlagRequired("email"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	return cmd
}

func userListCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "List all users ordered by name, optionally filtered by role.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			if role != "" {
				if ok, msg := validation.OneOf(role, models.Roles, "role"); !ok {
					failValidation(formatter, msg)
				}
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			var users []*models.User
			if role != "" {
				users, err = cli.App.UserService.GetUsersByRole(ctx, role)
			} else {
				users, err = cli.App.UserService.GetAllUsers(ctx)
			}
			if err != nil {
				fail(formatter, err)
			}

			if formatter.Quiet {
				for _, u := range users {
					fmt.Printf("%d\n", u.ID)
				}
				return nil
			}

			data := make([]map[string]any, 0, len(users))
			for _, u := range users {
				data = append(data, userJSON(u))
			}
			if done, err := formatter.JSONData(data); done {
				return err
			}

			if len(users) == 0 {
				fmt.Println("No users found")
				return nil
			}
			fmt.Println(styles.TitleStyle.Render(fmt.Sprintf("Users (%d)", len(users))))
			for _, u := range users {
				fmt.Printf("  %s %s <%s> %s\n",
					styles.SubtleStyle.Render(fmt.Sprintf("[%d]", u.ID)),
					u.Name, u.Email,
					styles.SubtleStyle.Render(u.Role))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Only show users with this role")

	return cmd
}

func userShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a user's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			id, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid user id %q", args[0]))
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			user, err := cli.App.UserService.GetUserByID(ctx, id)
			if err != nil {
				fail(formatter, err)
			}
			tasks, err := cli.App.TaskService.GetTasksByUser(ctx, id)
			if err != nil {
				fail(formatter, err)
			}

			if formatter.Quiet {
				fmt.Printf("%d\n", user.ID)
				return nil
			}
			if done, err := formatter.JSONData(map[string]any{
				"user":       userJSON(user),
				"task_count": len(tasks),
			}); done {
				return err
			}

			fmt.Println(styles.TitleStyle.Render(user.Name) + " " +
				styles.SubtleStyle.Render(fmt.Sprintf("#%d", user.ID)))
			fmt.Printf("  %s %s\n", styles.LabelStyle.Render("Email:"), user.Email)
			fmt.Printf("  %s %s\n", styles.LabelStyle.Render("Role:"), user.Role)
			fmt.Printf("  %s %s\n", styles.LabelStyle.Render("Created:"),
				user.CreatedAt.Format(models.TimestampFormat))
			fmt.Printf("  %s %d\n", styles.LabelStyle.Render("Tasks:"), len(tasks))
			for _, task := range tasks {
				fmt.Printf("    %s %s %s\n",
					styles.SubtleStyle.Render(fmt.Sprintf("[%d]", task.ID)),
					task.Title,
					styles.SubtleStyle.Render("("+task.Status+")"))
			}
			return nil
		},
	}

	return cmd
}

func userUpdateCmd() *cobra.Command {
	var (
		name  string
		email string
		role  string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user",
		Long:  "Update a user. Only the provided flags change; omitted fields keep their value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			id, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid user id %q", args[0]))
			}

			req := userservice.UpdateUserRequest{ID: id}
			if cmd.Flags().Changed("name") {
				if ok, msg := validation.Required(name, "name"); !ok {
					failValidation(formatter, msg)
				}
				if ok, msg := validation.Length(name, 0, 100, "name"); !ok {
					failValidation(formatter, msg)
				}
				req.Name = &name
			}
			if cmd.Flags().Changed("email") {
				if ok, msg := validation.Email(email); !ok {
					failValidation(formatter, msg)
				}
				req.Email = &email
			}
			if cmd.Flags().Changed("role") {
				if ok, msg := validation.OneOf(role, models.Roles, "role"); !ok {
					failValidation(formatter, msg)
				}
				req.Role = &role
			}
			if req.Name == nil && req.Email == nil && req.Role == nil {
				failValidation(formatter, "nothing to update: provide --name, --email or --role")
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			user, err := cli.App.UserService.UpdateUser(ctx, req)
			if err != nil {
				fail(formatter, err)
			}

			return formatter.SuccessID(user.ID, userJSON(user),
				fmt.Sprintf("User %d updated", user.ID))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&role, "role", "", "New role: admin, manager or member")

	return cmd
}

func userDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Long: `Delete a user by id.

Tasks assigned to the user and projects managed by them survive with the
reference cleared; the user's comments are removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			formatter := newFormatter()

			id, ok := parseID(args[0])
			if !ok {
				failValidation(formatter, fmt.Sprintf("invalid user id %q", args[0]))
			}

			cli, err := NewCLI(ctx)
			if err != nil {
				fail(formatter, err)
			}
			defer closeCLI(cli)

			if !force && !formatter.Quiet && !formatter.JSON {
				user, err := cli.App.UserService.GetUserByID(ctx, id)
				if err != nil {
					fail(formatter, err)
				}
				if !confirm(fmt.Sprintf("Delete user #%d '%s'?", id, user.Name)) {
					fmt.Println("Cancelled")
					return nil
				}
			}

			found, err := cli.App.UserService.DeleteUser(ctx, id)
			if err != nil {
				fail(formatter, err)
			}
			if !found {
				fail(formatter, userservice.ErrUserNotFound)
			}

			return formatter.SuccessID(id, map[string]any{"id": id, "deleted": true},
				fmt.Sprintf("User %d deleted", id))
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

// confirm asks a y/N question on stdin
func confirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false
	}
	response = strings.ToLower(response)
	return response == "y" || response == "yes"
}

// closeCLI closes the CLI context, logging rather than masking errors
func closeCLI(c *CLI) {
	if err := c.Close(); err != nil {
		log.Printf("Error closing CLI: %v", err)
	}
}

func userJSON(u *models.User) map[string]any {
	return map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"role":       u.Role,
		"created_at": u.CreatedAt.Format(models.TimestampFormat),
	}
}
