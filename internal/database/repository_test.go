package database

import (
	"context"
	"testing"
	"time"

	"taskman/internal/models"
)

func TestUserRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, "Ana", "ana@x.com", models.RoleManager)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected store-assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected store-assigned created_at")
	}

	fetched, err := repo.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected user, got nil")
	}
	if fetched.Name != "Ana" || fetched.Email != "ana@x.com" || fetched.Role != models.RoleManager {
		t.Errorf("round trip mismatch: %+v", fetched)
	}
	if !fetched.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at changed across round trip: %v vs %v", fetched.CreatedAt, created.CreatedAt)
	}
}

func TestGetUserByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	user, err := repo.GetUserByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for missing user, got %+v", user)
	}
}

func TestDuplicateEmailConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "Ana", "ana@x.com")

	// The UNIQUE constraint, not a pre-check, is the authority here
	_, err := repo.CreateUser(ctx, "Other", "ana@x.com", models.RoleMember)
	if err == nil {
		t.Fatal("expected unique violation, got nil")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("row count changed after failed insert: %d", count)
	}
}

func TestGetAllUsersOrderedByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "Zoe", "zoe@x.com")
	createTestUser(t, repo, "Ana", "ana@x.com")
	createTestUser(t, repo, "Mia", "mia@x.com")

	users, err := repo.GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("GetAllUsers failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, want := range []string{"Ana", "Mia", "Zoe"} {
		if users[i].Name != want {
			t.Errorf("position %d: got %q, want %q", i, users[i].Name, want)
		}
	}
}

func TestProjectRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	managerID := createTestUser(t, repo, "Ana", "ana@x.com")
	start := day(2026, time.June, 1)
	end := day(2026, time.June, 30)

	created, err := repo.CreateProject(ctx, &models.Project{
		Name:        "Site Revamp",
		Description: "Full redesign",
		StartDate:   &start,
		EndDate:     &end,
		ManagerID:   &managerID,
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	fetched, err := repo.GetProjectByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProjectByID failed: %v", err)
	}
	if fetched.Name != "Site Revamp" || fetched.Description != "Full redesign" {
		t.Errorf("round trip mismatch: %+v", fetched)
	}
	if fetched.StartDate == nil || !fetched.StartDate.Equal(start) {
		t.Errorf("start_date mismatch: %v", fetched.StartDate)
	}
	if fetched.EndDate == nil || !fetched.EndDate.Equal(end) {
		t.Errorf("end_date mismatch: %v", fetched.EndDate)
	}
	if fetched.ManagerID == nil || *fetched.ManagerID != managerID {
		t.Errorf("manager_id mismatch: %v", fetched.ManagerID)
	}
}

func TestProjectDateFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	today := day(2026, time.June, 15)

	mk := func(name string, start, end *time.Time) {
		if _, err := repo.CreateProject(ctx, &models.Project{
			Name: name, StartDate: start, EndDate: end,
		}); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
	}

	mk("running", datePtr(day(2026, time.June, 1)), datePtr(day(2026, time.June, 30)))
	mk("dateless", nil, nil)
	mk("ended", datePtr(day(2026, time.May, 1)), datePtr(day(2026, time.May, 31)))
	mk("future", datePtr(day(2026, time.July, 1)), nil)
	mk("ends today", nil, datePtr(day(2026, time.June, 15)))

	names := func(projects []*models.Project) []string {
		var out []string
		for _, p := range projects {
			out = append(out, p.Name)
		}
		return out
	}

	active, err := repo.GetActiveProjects(ctx, today)
	if err != nil {
		t.Fatalf("GetActiveProjects failed: %v", err)
	}
	if got := names(active); len(got) != 3 {
		t.Errorf("active = %v, want [dateless, ends today, running]", got)
	}

	completed, err := repo.GetCompletedProjects(ctx, today)
	if err != nil {
		t.Fatalf("GetCompletedProjects failed: %v", err)
	}
	if len(completed) != 1 || completed[0].Name != "ended" {
		t.Errorf("completed = %v", names(completed))
	}

	upcoming, err := repo.GetUpcomingProjects(ctx, today)
	if err != nil {
		t.Fatalf("GetUpcomingProjects failed: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].Name != "future" {
		t.Errorf("upcoming = %v", names(upcoming))
	}
}

func TestTaskRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, repo, "Ana", "ana@x.com")
	projectID := createTestProject(t, repo, "Site Revamp")
	due := day(2026, time.July, 1)

	created, err := repo.CreateTask(ctx, &models.Task{
		Title:       "Wireframes",
		Description: "Low fidelity first",
		Status:      models.StatusPending,
		Priority:    models.PriorityHigh,
		DueDate:     &due,
		AssignedTo:  &userID,
		ProjectID:   &projectID,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	fetched, err := repo.GetTaskByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTaskByID failed: %v", err)
	}
	if fetched.Title != "Wireframes" || fetched.Status != models.StatusPending ||
		fetched.Priority != models.PriorityHigh {
		t.Errorf("round trip mismatch: %+v", fetched)
	}
	if fetched.DueDate == nil || !fetched.DueDate.Equal(due) {
		t.Errorf("due_date mismatch: %v", fetched.DueDate)
	}
	if fetched.AssignedTo == nil || *fetched.AssignedTo != userID {
		t.Errorf("assigned_to mismatch: %v", fetched.AssignedTo)
	}
	if fetched.ProjectID == nil || *fetched.ProjectID != projectID {
		t.Errorf("project_id mismatch: %v", fetched.ProjectID)
	}
	if fetched.CreatedAt.IsZero() || fetched.UpdatedAt.IsZero() {
		t.Error("expected store-assigned timestamps")
	}
}

func TestListTasksFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	anaID := createTestUser(t, repo, "Ana", "ana@x.com")
	bobID := createTestUser(t, repo, "Bob", "bob@x.com")
	projectID := createTestProject(t, repo, "Site Revamp")

	mk := func(title string, assignee *int64, project *int64, status string) {
		if _, err := repo.CreateTask(ctx, &models.Task{
			Title: title, Status: status, Priority: models.PriorityMedium,
			AssignedTo: assignee, ProjectID: project,
		}); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	mk("ana project pending", &anaID, &projectID, models.StatusPending)
	mk("ana loose done", &anaID, nil, models.StatusCompleted)
	mk("bob project done", &bobID, &projectID, models.StatusCompleted)
	mk("unassigned", nil, nil, models.StatusPending)

	t.Run("no filter returns everything", func(t *testing.T) {
		tasks, err := repo.ListTasks(ctx, TaskFilter{})
		if err != nil {
			t.Fatalf("ListTasks failed: %v", err)
		}
		if len(tasks) != 4 {
			t.Errorf("expected 4 tasks, got %d", len(tasks))
		}
	})

	t.Run("by assignee email", func(t *testing.T) {
		tasks, err := repo.ListTasks(ctx, TaskFilter{AssigneeEmail: "ana@x.com"})
		if err != nil {
			t.Fatalf("ListTasks failed: %v", err)
		}
		if len(tasks) != 2 {
			t.Errorf("expected 2 tasks for ana, got %d", len(tasks))
		}
	})

	t.Run("by project", func(t *testing.T) {
		tasks, err := repo.ListTasks(ctx, TaskFilter{ProjectID: projectID})
		if err != nil {
			t.Fatalf("ListTasks failed: %v", err)
		}
		if len(tasks) != 2 {
			t.Errorf("expected 2 project tasks, got %d", len(tasks))
		}
	})

	t.Run("all predicates AND-composed", func(t *testing.T) {
		tasks, err := repo.ListTasks(ctx, TaskFilter{
			AssigneeEmail: "ana@x.com",
			ProjectID:     projectID,
			Status:        models.StatusPending,
		})
		if err != nil {
			t.Fatalf("ListTasks failed: %v", err)
		}
		if len(tasks) != 1 || tasks[0].Title != "ana project pending" {
			t.Errorf("unexpected result: %+v", tasks)
		}
	})
}

func TestGetTasksByUserAndProject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	anaID := createTestUser(t, repo, "Ana", "ana@x.com")
	bobID := createTestUser(t, repo, "Bob", "bob@x.com")
	projectID := createTestProject(t, repo, "Site Revamp")

	mk := func(title string, assignee, project *int64, priority int) {
		if _, err := repo.CreateTask(ctx, &models.Task{
			Title: title, Status: models.StatusPending, Priority: priority,
			AssignedTo: assignee, ProjectID: project,
		}); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	mk("ana low", &anaID, &projectID, models.PriorityLow)
	mk("ana high", &anaID, nil, models.PriorityHigh)
	mk("bob task", &bobID, &projectID, models.PriorityMedium)
	mk("unassigned", nil, nil, models.PriorityMedium)

	t.Run("by user", func(t *testing.T) {
		tasks, err := repo.GetTasksByUser(ctx, anaID)
		if err != nil {
			t.Fatalf("GetTasksByUser failed: %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("expected 2 tasks for ana, got %d", len(tasks))
		}
		// Same ordering contract as ListTasks: priority first
		if tasks[0].Title != "ana high" || tasks[1].Title != "ana low" {
			t.Errorf("unexpected order: %q, %q", tasks[0].Title, tasks[1].Title)
		}
	})

	t.Run("by user with no tasks", func(t *testing.T) {
		carolID := createTestUser(t, repo, "Carol", "carol@x.com")
		tasks, err := repo.GetTasksByUser(ctx, carolID)
		if err != nil {
			t.Fatalf("GetTasksByUser failed: %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("expected no tasks, got %d", len(tasks))
		}
	})

	t.Run("by project", func(t *testing.T) {
		tasks, err := repo.GetTasksByProject(ctx, projectID)
		if err != nil {
			t.Fatalf("GetTasksByProject failed: %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("expected 2 project tasks, got %d", len(tasks))
		}
		if tasks[0].Title != "bob task" || tasks[1].Title != "ana low" {
			t.Errorf("unexpected order: %q, %q", tasks[0].Title, tasks[1].Title)
		}
	})
}

func TestListTasksOrderingNullsLast(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mk := func(title string, priority int, due *time.Time) {
		if _, err := repo.CreateTask(ctx, &models.Task{
			Title: title, Status: models.StatusPending, Priority: priority, DueDate: due,
		}); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	mk("high no due", models.PriorityHigh, nil)
	mk("high late", models.PriorityHigh, datePtr(day(2026, time.August, 1)))
	mk("high early", models.PriorityHigh, datePtr(day(2026, time.July, 1)))
	mk("low early", models.PriorityLow, datePtr(day(2026, time.July, 1)))

	tasks, err := repo.ListTasks(ctx, TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}

	want := []string{"high early", "high late", "high no due", "low early"}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, tasks[i].Title, title)
		}
	}
}

func TestOverdueAndUpcomingWindows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	today := day(2026, time.June, 15)

	mk := func(title string, due *time.Time, status string) {
		if _, err := repo.CreateTask(ctx, &models.Task{
			Title: title, Status: status, Priority: models.PriorityMedium, DueDate: due,
		}); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	mk("overdue", datePtr(day(2026, time.June, 10)), models.StatusPending)
	mk("overdue but done", datePtr(day(2026, time.June, 10)), models.StatusCompleted)
	mk("due today", datePtr(day(2026, time.June, 15)), models.StatusPending)
	mk("due in window", datePtr(day(2026, time.June, 20)), models.StatusInProgress)
	mk("due past window", datePtr(day(2026, time.June, 23)), models.StatusPending)
	mk("no due date", nil, models.StatusPending)

	t.Run("overdue excludes today and completed", func(t *testing.T) {
		tasks, err := repo.GetOverdueTasks(ctx, today)
		if err != nil {
			t.Fatalf("GetOverdueTasks failed: %v", err)
		}
		if len(tasks) != 1 || tasks[0].Title != "overdue" {
			t.Errorf("unexpected overdue set: %+v", tasks)
		}
	})

	t.Run("upcoming window is inclusive", func(t *testing.T) {
		tasks, err := repo.GetUpcomingTasks(ctx, today, 7)
		if err != nil {
			t.Fatalf("GetUpcomingTasks failed: %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("expected 2 upcoming tasks, got %d", len(tasks))
		}
		if tasks[0].Title != "due today" || tasks[1].Title != "due in window" {
			t.Errorf("unexpected upcoming order: %q, %q", tasks[0].Title, tasks[1].Title)
		}
	})

	t.Run("zero window means due today", func(t *testing.T) {
		tasks, err := repo.GetUpcomingTasks(ctx, today, 0)
		if err != nil {
			t.Fatalf("GetUpcomingTasks failed: %v", err)
		}
		if len(tasks) != 1 || tasks[0].Title != "due today" {
			t.Errorf("unexpected zero-window set: %+v", tasks)
		}
	})
}

func TestDeleteUserNullifiesReferences(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, repo, "Ana", "ana@x.com")
	projectID := createTestProject(t, repo, "Site Revamp")

	if _, err := repo.CreateProject(ctx, &models.Project{Name: "Managed", ManagerID: &userID}); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	task, err := repo.CreateTask(ctx, &models.Task{
		Title: "Wireframes", Status: models.StatusPending,
		Priority: models.PriorityMedium, AssignedTo: &userID, ProjectID: &projectID,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := repo.CreateComment(ctx, task.ID, userID, "first pass"); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	affected, err := repo.DeleteUser(ctx, userID)
	if err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 row deleted, got %d", affected)
	}

	// Task survives with its assignee nullified
	fetched, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("task should survive user deletion")
	}
	if fetched.AssignedTo != nil {
		t.Errorf("assigned_to should be nullified, got %v", *fetched.AssignedTo)
	}

	// The user's comments cascade away
	comments, err := repo.GetCommentsByTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetCommentsByTask failed: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("expected comments to cascade, got %d", len(comments))
	}
}

func TestDeleteTaskCascadesComments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, repo, "Ana", "ana@x.com")
	taskID := createTestTask(t, repo, "Wireframes", nil)

	if _, err := repo.CreateComment(ctx, taskID, userID, "looks good"); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	if _, err := repo.DeleteTask(ctx, taskID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM comments").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected comments to cascade with task, got %d rows", count)
	}
}

func TestDeleteProjectNullifiesTasks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	projectID := createTestProject(t, repo, "Site Revamp")
	task, err := repo.CreateTask(ctx, &models.Task{
		Title: "Wireframes", Status: models.StatusPending,
		Priority: models.PriorityMedium, ProjectID: &projectID,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if _, err := repo.DeleteProject(ctx, projectID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	fetched, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("task should survive project deletion")
	}
	if fetched.ProjectID != nil {
		t.Errorf("project_id should be nullified, got %v", *fetched.ProjectID)
	}
}

func TestDeleteMissingRowsAffectsNothing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for name, del := range map[string]func() (int64, error){
		"user":    func() (int64, error) { return repo.DeleteUser(ctx, 42) },
		"project": func() (int64, error) { return repo.DeleteProject(ctx, 42) },
		"task":    func() (int64, error) { return repo.DeleteTask(ctx, 42) },
		"comment": func() (int64, error) { return repo.DeleteComment(ctx, 42) },
	} {
		affected, err := del()
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
		if affected != 0 {
			t.Errorf("%s: expected 0 rows affected, got %d", name, affected)
		}
	}
}

func TestCommentsOrderedOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, repo, "Ana", "ana@x.com")
	taskID := createTestTask(t, repo, "Wireframes", nil)

	for _, content := range []string{"first", "second", "third"} {
		if _, err := repo.CreateComment(ctx, taskID, userID, content); err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
	}

	comments, err := repo.GetCommentsByTask(ctx, taskID)
	if err != nil {
		t.Fatalf("GetCommentsByTask failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	for i, want := range []string{"first", "second", "third"} {
		if comments[i].Content != want {
			t.Errorf("position %d: got %q, want %q", i, comments[i].Content, want)
		}
	}
}
