package integration

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/clientprojects/pkg/dberr"
	"github.com/doodlesbykumbi/clientprojects/pkg/model"
	"github.com/doodlesbykumbi/clientprojects/pkg/seed"
	"github.com/doodlesbykumbi/clientprojects/pkg/store"
	gormstore "github.com/doodlesbykumbi/clientprojects/pkg/store/gorm"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc         *TestContext
	ctx        context.Context
	schema     store.SchemaStore
	clients    store.ClientsStore
	seedResult seed.Result
	lastErr    error
	queried    []model.Client
	cli        *CLIResult
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:      tc,
		ctx:     context.Background(),
		schema:  gormstore.NewSchemaStore(tc.DB),
		clients: gormstore.NewClientsStore(tc.DB),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^an empty database$`, s.anEmptyDatabase)
	sc.Step(`^the database has been seeded$`, s.theDatabaseHasBeenSeeded)

	// Schema steps
	sc.Step(`^table "([^"]*)" should exist$`, s.tableShouldExist)
	sc.Step(`^index "([^"]*)" should exist on table "([^"]*)"$`, s.indexShouldExist)

	// Seed steps
	sc.Step(`^I seed the database$`, s.iSeedTheDatabase)
	sc.Step(`^the seed result should report (\d+) clients, (\d+) users and (\d+) projects$`, s.theSeedResultShouldReport)
	sc.Step(`^the database should hold (\d+) clients and (\d+) projects$`, s.theDatabaseShouldHold)

	// Insert steps
	sc.Step(`^I insert client "([^"]*)"$`, s.iInsertClient)
	sc.Step(`^I insert client "([^"]*)" with projects "([^"]*)"$`, s.iInsertClientWithProjects)
	sc.Step(`^I delete client "([^"]*)"$`, s.iDeleteClient)
	sc.Step(`^the operation should succeed$`, s.theOperationShouldSucceed)
	sc.Step(`^the operation should fail with a unique violation$`, s.theOperationShouldFailWithAUniqueViolation)

	// Query steps
	sc.Step(`^I query clients with a project name containing "([^"]*)"$`, s.iQueryClients)
	sc.Step(`^the query should return clients "([^"]*)"$`, s.theQueryShouldReturnClients)
	sc.Step(`^the query should return no clients$`, s.theQueryShouldReturnNoClients)
	sc.Step(`^the query should not return client "([^"]*)"$`, s.theQueryShouldNotReturnClient)
	sc.Step(`^client "([^"]*)" should have (\d+) projects$`, s.clientShouldHaveProjects)
	sc.Step(`^every project of client "([^"]*)" should contain "([^"]*)"$`, s.everyProjectShouldContain)
	sc.Step(`^the projects of client "([^"]*)" should end in distinct digits 1 to 3$`, s.projectsShouldEndInDistinctDigits)
	sc.Step(`^every returned project should reference its client$`, s.everyReturnedProjectShouldReferenceItsClient)

	// CLI steps
	sc.Step(`^I run projectctl$`, s.iRunProjectctl)
	sc.Step(`^I run projectctl "([^"]*)"$`, s.iRunProjectctlWith)
	sc.Step(`^the exit code should be (\d+)$`, s.theExitCodeShouldBe)
	sc.Step(`^the output should be:$`, s.theOutputShouldBe)
}

// Background steps

func (s *StepsContext) anEmptyDatabase() error {
	return s.schema.Reset(s.ctx)
}

func (s *StepsContext) theDatabaseHasBeenSeeded() error {
	if _, err := seed.Seed(s.ctx, s.clients); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	return nil
}

// Schema steps

func (s *StepsContext) tableShouldExist(table string) error {
	if !s.tc.DB.Migrator().HasTable(table) {
		return fmt.Errorf("table %q does not exist", table)
	}
	return nil
}

func (s *StepsContext) indexShouldExist(index, table string) error {
	var count int64
	err := s.tc.DB.Raw(
		`SELECT count(*) FROM pg_indexes WHERE tablename = ? AND indexname = ?`, table, index,
	).Scan(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("index %q does not exist on %q", index, table)
	}
	return nil
}

// Seed steps

func (s *StepsContext) iSeedTheDatabase() error {
	s.seedResult, s.lastErr = seed.Seed(s.ctx, s.clients)
	return nil
}

func (s *StepsContext) theSeedResultShouldReport(clients, users, projects int) error {
	if s.lastErr != nil {
		return fmt.Errorf("seed failed: %w", s.lastErr)
	}
	want := seed.Result{Clients: clients, Users: users, Projects: projects}
	if s.seedResult != want {
		return fmt.Errorf("expected seed result %s, got %s", want, s.seedResult)
	}
	return nil
}

func (s *StepsContext) theDatabaseShouldHold(clients, projects int) error {
	var clientCount, projectCount int64
	if err := s.tc.DB.Model(&model.Client{}).Count(&clientCount).Error; err != nil {
		return err
	}
	if err := s.tc.DB.Model(&model.Project{}).Count(&projectCount).Error; err != nil {
		return err
	}
	if clientCount != int64(clients) || projectCount != int64(projects) {
		return fmt.Errorf("expected %d clients and %d projects, got %d and %d", clients, projects, clientCount, projectCount)
	}
	return nil
}

// Insert steps

func (s *StepsContext) iInsertClient(name string) error {
	return s.insert(model.Client{Name: name})
}

func (s *StepsContext) iInsertClientWithProjects(name, projects string) error {
	client := model.Client{Name: name}
	for _, p := range splitList(projects) {
		client.Projects = append(client.Projects, model.Project{Name: p})
	}
	return s.insert(client)
}

func (s *StepsContext) insert(client model.Client) error {
	s.lastErr = s.clients.Transaction(s.ctx, func(tx store.ClientsStore) error {
		return tx.CreateClients(s.ctx, []model.Client{client})
	})
	return nil
}

func (s *StepsContext) iDeleteClient(name string) error {
	s.lastErr = s.tc.DB.Where("name = ?", name).Delete(&model.Client{}).Error
	return nil
}

func (s *StepsContext) theOperationShouldSucceed() error {
	if s.lastErr != nil {
		return fmt.Errorf("expected success, got: %w", s.lastErr)
	}
	return nil
}

func (s *StepsContext) theOperationShouldFailWithAUniqueViolation() error {
	if s.lastErr == nil {
		return fmt.Errorf("expected a unique violation, got success")
	}
	if !dberr.IsUniqueViolation(s.lastErr) {
		return fmt.Errorf("expected a unique violation, got: %w", s.lastErr)
	}
	return nil
}

// Query steps

func (s *StepsContext) iQueryClients(substr string) error {
	var err error
	s.queried, err = s.clients.ClientsWithProjectNameContaining(s.ctx, substr)
	return err
}

func (s *StepsContext) theQueryShouldReturnClients(names string) error {
	want := splitList(names)
	got := make([]string, 0, len(s.queried))
	for _, c := range s.queried {
		got = append(got, c.Name)
	}
	sort.Strings(want)
	sort.Strings(got)
	if strings.Join(want, ",") != strings.Join(got, ",") {
		return fmt.Errorf("expected clients %v, got %v", want, got)
	}
	return nil
}

func (s *StepsContext) theQueryShouldReturnNoClients() error {
	if len(s.queried) != 0 {
		return fmt.Errorf("expected no clients, got %d", len(s.queried))
	}
	return nil
}

func (s *StepsContext) theQueryShouldNotReturnClient(name string) error {
	if _, ok := s.queriedClient(name); ok {
		return fmt.Errorf("client %q should not be returned", name)
	}
	return nil
}

func (s *StepsContext) clientShouldHaveProjects(name string, count int) error {
	c, ok := s.queriedClient(name)
	if !ok {
		return fmt.Errorf("client %q was not returned", name)
	}
	if len(c.Projects) != count {
		return fmt.Errorf("expected %d projects for %q, got %d", count, name, len(c.Projects))
	}
	return nil
}

func (s *StepsContext) everyProjectShouldContain(name, fragment string) error {
	c, ok := s.queriedClient(name)
	if !ok {
		return fmt.Errorf("client %q was not returned", name)
	}
	for _, p := range c.Projects {
		if !strings.Contains(p.Name, fragment) {
			return fmt.Errorf("project %q of %q does not contain %q", p.Name, name, fragment)
		}
	}
	return nil
}

func (s *StepsContext) projectsShouldEndInDistinctDigits(name string) error {
	c, ok := s.queriedClient(name)
	if !ok {
		return fmt.Errorf("client %q was not returned", name)
	}
	seen := map[byte]bool{}
	for _, p := range c.Projects {
		last := p.Name[len(p.Name)-1]
		if last < '1' || last > '3' || seen[last] {
			return fmt.Errorf("unexpected project name %q", p.Name)
		}
		seen[last] = true
	}
	if len(seen) != 3 {
		return fmt.Errorf("expected digits 1 to 3, got %d distinct", len(seen))
	}
	return nil
}

func (s *StepsContext) everyReturnedProjectShouldReferenceItsClient() error {
	for _, c := range s.queried {
		for _, p := range c.Projects {
			if p.ClientID != c.ID {
				return fmt.Errorf("project %q references %s, expected %s", p.Name, p.ClientID, c.ID)
			}
		}
	}
	return nil
}

func (s *StepsContext) queriedClient(name string) (model.Client, bool) {
	for _, c := range s.queried {
		if c.Name == name {
			return c, true
		}
	}
	return model.Client{}, false
}

// CLI steps

func (s *StepsContext) iRunProjectctl() error {
	return s.iRunProjectctlWith("")
}

func (s *StepsContext) iRunProjectctlWith(args string) error {
	var err error
	s.cli, err = RunCLI(s.ctx, s.tc, strings.Fields(args)...)
	return err
}

func (s *StepsContext) theExitCodeShouldBe(code int) error {
	if s.cli.ExitCode != code {
		return fmt.Errorf("expected exit code %d, got %d\nstderr: %s", code, s.cli.ExitCode, s.cli.Stderr)
	}
	return nil
}

func (s *StepsContext) theOutputShouldBe(expected *godog.DocString) error {
	want := strings.TrimRight(expected.Content, "\n")
	got := strings.TrimRight(s.cli.Stdout, "\n")
	if got != want {
		return fmt.Errorf("expected output:\n%s\ngot:\n%s", want, got)
	}
	return nil
}

func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
