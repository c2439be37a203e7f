package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/clientprojects/pkg/demo"
	"github.com/doodlesbykumbi/clientprojects/pkg/query"
	"github.com/doodlesbykumbi/clientprojects/pkg/seed"
	gormstore "github.com/doodlesbykumbi/clientprojects/pkg/store/gorm"
)

// CLIResult is the outcome of one projectctl invocation.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunCLI runs projectctl with args against the test database. In binary mode
// the real executable runs with DATABASE_URL pointing at the container;
// inline mode drives the same packages in-process.
func RunCLI(ctx context.Context, tc *TestContext, args ...string) (*CLIResult, error) {
	if tc.BinaryPath != "" {
		return runBinary(ctx, tc, args)
	}
	return runInline(ctx, tc, args)
}

func runBinary(ctx context.Context, tc *TestContext, args []string) (*CLIResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, tc.BinaryPath, args...)
	cmd.Dir = os.TempDir()
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+tc.DatabaseURL,
		"APP_CONFIG_PATH="+os.TempDir(),
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := &CLIResult{}
	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		return nil, fmt.Errorf("failed to run %s: %w", tc.BinaryPath, err)
	}
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result, nil
}

func runInline(ctx context.Context, tc *TestContext, args []string) (*CLIResult, error) {
	var stdout, stderr bytes.Buffer
	log := zerolog.New(&stderr)
	clients := gormstore.NewClientsStore(tc.DB)

	var err error
	switch {
	case len(args) == 0:
		runner := &demo.Runner{
			Schema:  gormstore.NewSchemaStore(tc.DB),
			Clients: clients,
			Out:     &stdout,
			Log:     log,
		}
		err = runner.Run(ctx)
	case args[0] == "seed":
		var result seed.Result
		result, err = seed.Seed(log.WithContext(ctx), clients)
		if err == nil {
			fmt.Fprintf(&stdout, "Clients: %d\nUsers: %d\nProjects: %d\n", result.Clients, result.Users, result.Projects)
		}
	case args[0] == "query":
		substr := query.DefaultSubstring
		if len(args) > 1 {
			substr = args[1]
		}
		err = query.Run(ctx, clients, &stdout, substr)
	case len(args) == 2 && args[0] == "db" && args[1] == "reset":
		err = gormstore.NewSchemaStore(tc.DB).Reset(ctx)
	default:
		return nil, fmt.Errorf("inline mode does not support %v", args)
	}

	result := &CLIResult{Stdout: stdout.String()}
	if err != nil {
		fmt.Fprintf(&stderr, "%v\n", err)
		result.ExitCode = 1
	}
	result.Stderr = stderr.String()
	return result, nil
}
