package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	instancepb "cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SplitDDL breaks a script into statements on ';'. Lines starting with "--"
// are dropped.
func SplitDDL(sql string) []string {
	// Normalize line endings for Windows-authored files.
	sql = strings.ReplaceAll(sql, "\r\n", "\n")

	var b strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	parts := strings.Split(b.String(), ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

// ReadStatements reads every *.sql file in fsys in name order.
func ReadStatements(fsys fs.FS) ([]string, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var stmts []string
	for _, name := range names {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		stmts = append(stmts, SplitDDL(string(b))...)
	}
	return stmts, nil
}

// Apply runs stmts against db and waits for the operation to finish.
func Apply(ctx context.Context, admin *database.DatabaseAdminClient, db string, stmts []string) error {
	if len(stmts) == 0 {
		return fmt.Errorf("no DDL statements for %s", db)
	}
	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		return fmt.Errorf("UpdateDatabaseDdl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("UpdateDatabaseDdl wait: %w", err)
	}
	return nil
}

// EnsureInstance creates an emulator instance unless it already exists.
func EnsureInstance(ctx context.Context, admin *instance.InstanceAdminClient, projectID, instanceID string) error {
	parent := "projects/" + projectID
	name := parent + "/instances/" + instanceID

	_, err := admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: name})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return fmt.Errorf("GetInstance: %w", err)
	}

	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     parent,
		InstanceId: instanceID,
		Instance: &instancepb.Instance{
			Config:      parent + "/instanceConfigs/emulator-config",
			DisplayName: instanceID,
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("CreateInstance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("CreateInstance wait: %w", err)
	}
	return nil
}

// EnsureDatabase creates databaseID inside the instance unless it exists.
func EnsureDatabase(ctx context.Context, admin *database.DatabaseAdminClient, instanceName, databaseID string) error {
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          instanceName,
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", databaseID),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("CreateDatabase: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("CreateDatabase wait: %w", err)
	}
	return nil
}

// ParseDatabase splits projects/P/instances/I/databases/D into its parts.
func ParseDatabase(name string) (project, inst, db string, err error) {
	parts := strings.Split(name, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return "", "", "", fmt.Errorf("malformed database name %q", name)
	}
	return parts[1], parts[3], parts[5], nil
}
