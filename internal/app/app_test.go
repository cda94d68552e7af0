package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/coursegraph/internal/course"
	"github.com/vk/coursegraph/internal/testutil"
	"github.com/vk/coursegraph/internal/yamlcourse"
)

type staticLoader struct {
	courses []*course.Course
	err     error
}

func (l staticLoader) Load(context.Context, ...string) ([]*course.Course, error) {
	return l.courses, l.err
}

func sampleCourses() []*course.Course {
	first := testutil.Course(
		testutil.Node("100", testutil.Title("Intro")),
		testutil.Node("200", testutil.Title("Quiz"), testutil.Access(testutil.Passed("100"))),
	)
	first.Title = "First"
	second := testutil.Course(
		testutil.Node("10", testutil.Access(testutil.Passed("11"))),
		testutil.Node("11", testutil.Access(testutil.Passed("10"))),
	)
	second.Title = "Second"
	return []*course.Course{first, second}
}

func runApp(t *testing.T, cfg Config, loader CourseLoader) (string, string, error) {
	t.Helper()
	cfg.CoursePaths = []string{"ignored"}
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	logs := &testutil.SafeBuffer{}
	courseApp, err := NewApp(&out, logs, appConfig, loader)
	require.NoError(t, err)
	err = courseApp.Run(context.Background())
	return out.String(), logs.String(), err
}

func TestNewApp_RejectsUnvalidatedConfig(t *testing.T) {
	_, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{LogLevel: "chatty"}, staticLoader{})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{Parser: "regex"}, staticLoader{})
	assert.ErrorContains(t, err, "unknown expression scanner")
}

func TestApp_Analyze(t *testing.T) {
	out, logs, err := runApp(t, Config{Command: CommandAnalyze, WorkerCount: 4, LogLevel: "debug"}, staticLoader{courses: sampleCourses()})
	require.NoError(t, err)

	assert.Contains(t, out, "== analyze: First")
	assert.Contains(t, out, "nodes: 3  edges: 1  cyclic: 0")
	assert.Contains(t, out, "== analyze: Second")
	assert.Contains(t, out, "cyclic: 2")
	assert.Less(t, strings.Index(out, "First"), strings.Index(out, "Second"))

	assert.Contains(t, logs, "Courses loaded.")
	assert.Contains(t, logs, "Cyclic dependency detected.")
}

func TestApp_JSONOutput(t *testing.T) {
	out, _, err := runApp(t, Config{Command: CommandOrder, Output: "json"}, staticLoader{courses: sampleCourses()})
	require.NoError(t, err)

	var results []struct {
		Course  string `json:"course"`
		Command string `json:"command"`
		Result  struct {
			Order      []string `json:"order"`
			Unresolved []string `json:"unresolved"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "First", results[0].Course)
	assert.Equal(t, CommandOrder, results[0].Command)
	assert.Equal(t, []string{"1", "100", "200"}, results[0].Result.Order)
	assert.Empty(t, results[0].Result.Unresolved)
	assert.Equal(t, []string{"10", "11"}, results[1].Result.Unresolved)
}

func TestApp_CheckDelete(t *testing.T) {
	t.Run("blocked deletion fails the run", func(t *testing.T) {
		out, _, err := runApp(t, Config{Command: CommandCheckDelete, NodeIDs: []string{"100"}}, staticLoader{courses: sampleCourses()[:1]})

		assert.ErrorIs(t, err, ErrChecksFailed)
		assert.Contains(t, out, "node 100:")
		assert.Contains(t, out, "FAILED: 1 element(s) depend on this node and will be affected")
		assert.Contains(t, out, "error: Node 'Quiz' depends on this element")
	})

	t.Run("free node passes", func(t *testing.T) {
		out, _, err := runApp(t, Config{Command: CommandCheckDelete, NodeIDs: []string{"200"}}, staticLoader{courses: sampleCourses()[:1]})

		require.NoError(t, err)
		assert.Contains(t, out, "OK: No dependency issues found")
	})
}

func TestApp_ValidateAndPlan(t *testing.T) {
	out, _, err := runApp(t, Config{Command: CommandValidate, NodeIDs: []string{"200"}}, staticLoader{courses: sampleCourses()[:1]})
	require.NoError(t, err)
	assert.Contains(t, out, "warning: Element 'Quiz' depends on 'Intro' which is not selected")
	assert.Contains(t, out, "suggested inclusions: 100")

	out, _, err = runApp(t, Config{Command: CommandPlan, NodeIDs: []string{"200", "999"}, IncludeDependencies: true}, staticLoader{courses: sampleCourses()[:1]})
	require.NoError(t, err)
	assert.Contains(t, out, "plan for 200 (include dependencies: true)")
	assert.Contains(t, out, "order: 100,200")
	assert.NotContains(t, out, "plan for 999")
}

func TestApp_Rewrite(t *testing.T) {
	out, _, err := runApp(t, Config{Command: CommandRewrite, Mapping: map[string]string{"100": "101"}}, staticLoader{courses: sampleCourses()[:1]})
	require.NoError(t, err)

	assert.Contains(t, out, "changed values: 1")
	assert.Contains(t, out, `course "First"`)
	assert.Contains(t, out, `getPassed(\"101\")`)
}

func TestApp_RewriteKeepsSourceFormat(t *testing.T) {
	c := sampleCourses()[0]
	c.Source = "courses/first.yml"
	out, _, err := runApp(t, Config{Command: CommandRewrite, Mapping: map[string]string{"100": "101"}, Output: "json"}, staticLoader{courses: []*course.Course{c}})
	require.NoError(t, err)

	var results []struct {
		Result RewriteResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	got := results[0].Result
	assert.Equal(t, 1, got.ChangedValues)
	assert.Equal(t, "yaml", got.Format)

	parsed, err := yamlcourse.NewLoader().Parse(context.Background(), []byte(got.Document), c.Source)
	require.NoError(t, err, got.Document)
	require.Len(t, parsed, 1)
	assert.Equal(t, "First", parsed[0].Title)
	assert.Equal(t, testutil.Passed("101"), parsed[0].FindNode("200").AccessCondition)
}

func TestApp_LoadError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := runApp(t, Config{}, staticLoader{err: boom})

	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "failed to load courses")
}

func TestApp_HCLScanner(t *testing.T) {
	c := testutil.Course(
		testutil.Node("100"),
		testutil.Node("200", testutil.Access(`getPassed("100") && !isGuest()`)),
	)
	out, _, err := runApp(t, Config{Command: CommandAnalyze, Parser: "hcl", StructureEdges: true}, staticLoader{courses: []*course.Course{c}})
	require.NoError(t, err)

	// 200 -> 100 plus two structure edges.
	assert.Contains(t, out, "edges: 3")
	assert.Contains(t, out, "STRUCTURE_PARENT")
}
