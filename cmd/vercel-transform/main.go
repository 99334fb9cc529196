// Command vercel-transform converts raw Vercel project JSON into the
// dashboard's canonical ProjectWithSource form without calling the API.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/TodayDesign/vercel-project-dashboard/internal/config"
	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/transform"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("vercel-transform", flag.ContinueOnError)
	in := fs.String("in", "-", "Input file with a project object or a {\"projects\": [...]} list; - reads stdin")
	policyFile := fs.String("policy", "", "YAML transform policy")
	now := fs.String("now", "", "Fixed clock as RFC 3339 (default: current time)")
	pretty := fs.Bool("pretty", false, "Indent the output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	policy := config.DefaultPolicy()
	if *policyFile != "" {
		var err error
		if policy, err = config.LoadPolicy(*policyFile); err != nil {
			return err
		}
	}

	opts := []transform.Option{transform.WithPolicy(policy.Transform())}
	if *now != "" {
		t, err := time.Parse(time.RFC3339, *now)
		if err != nil {
			return fmt.Errorf("parse -now: %w", err)
		}
		opts = append(opts, transform.WithClock(func() time.Time { return t }))
	}

	data, err := readInput(*in, stdin)
	if err != nil {
		return err
	}
	projects, malformed, err := decodeProjects(data)
	if err != nil {
		return err
	}
	for _, problem := range malformed {
		fmt.Fprintf(stderr, "Warning: %v\n", problem)
	}

	out := model.ProjectList{
		Projects: transform.New(opts...).AssembleAll(projects, nil),
		Source:   model.SourceVercel,
	}

	enc := json.NewEncoder(stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// decodeProjects accepts the /v9/projects response shape or a single
// project object. Records with fields of an unexpected type are kept with
// those fields zeroed and reported in malformed.
func decodeProjects(data []byte) (projects []vercel.Project, malformed []error, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("empty input")
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, fmt.Errorf("decode input: %w", err)
	}

	if _, ok := probe["projects"]; ok {
		var list vercel.ProjectList
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, nil, fmt.Errorf("decode project list: %w", err)
		}
		return list.Projects, list.Malformed, nil
	}

	p, mismatch, err := vercel.DecodeProject(data)
	if err != nil {
		return nil, nil, err
	}
	if mismatch != nil {
		malformed = append(malformed, mismatch)
	}
	return []vercel.Project{p}, malformed, nil
}
