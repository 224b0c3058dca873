package treecoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"petrarch/internal/config"
	"petrarch/internal/corpus"
	"petrarch/internal/services"
)

func stubCommand(t *testing.T, mode string) *[]string {
	t.Helper()
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string{name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("TREECODER_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &captured
}

func testRequest() services.CodeRequest {
	return services.CodeRequest{
		StoryID:    "AFP001",
		SentenceID: "1",
		Parsed:     "(S (NP (NNP FRANCE ) ) ) ",
		Text:       "France protested.",
		Date:       735234,
		Config:     config.DefaultRunConfig(),
	}
}

func TestCodeReturnsEvents(t *testing.T) {
	captured := stubCommand(t, "success")
	cli := NewCLI("treecoder", WithArgs("--dict", "/tmp/verbs"))

	events, err := cli.Code(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Code returned error: %v", err)
	}
	want := []corpus.Event{{Source: "FRA", Target: "USA", Code: "111"}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"treecoder", "--dict", "/tmp/verbs"}, *captured); diff != "" {
		t.Fatalf("command mismatch (-want +got):\n%s", diff)
	}
}

func TestCodePassesEnvironment(t *testing.T) {
	stubCommand(t, "env")
	cli := NewCLI("treecoder", WithEnv("PETRARCH_VERB_FILE=/dict/verbs.txt"))

	events, err := cli.Code(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Code returned error: %v", err)
	}
	want := []corpus.Event{{Source: "ENV", Target: "ENV", Code: "/dict/verbs.txt"}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestCodeEmptyResult(t *testing.T) {
	stubCommand(t, "empty")
	events, err := NewCLI("treecoder").Code(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Code returned error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
}

func TestCodeFailures(t *testing.T) {
	for _, mode := range []string{"failure", "badjson", "short", "reported"} {
		t.Run(mode, func(t *testing.T) {
			stubCommand(t, mode)
			_, err := NewCLI("treecoder").Code(context.Background(), testRequest())
			if !errors.Is(err, services.ErrCoder) {
				t.Fatalf("expected coder error, got %v", err)
			}
		})
	}
}

func TestCodeTimeout(t *testing.T) {
	stubCommand(t, "slow")
	_, err := NewCLI("treecoder", WithTimeout(50*time.Millisecond)).Code(context.Background(), testRequest())
	if !errors.Is(err, services.ErrCoder) {
		t.Fatalf("expected coder error on timeout, got %v", err)
	}
}

func TestCodeRequiresBinary(t *testing.T) {
	_, err := NewCLI("  ").Code(context.Background(), testRequest())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	var req services.CodeRequest
	data, _ := io.ReadAll(os.Stdin)
	if err := json.Unmarshal(data, &req); err != nil || req.StoryID != "AFP001" {
		fmt.Fprintln(os.Stderr, "bad request")
		os.Exit(2)
	}

	switch os.Getenv("TREECODER_HELPER_MODE") {
	case "success":
		fmt.Println(`{"events":[["FRA","USA","111"]]}`)
	case "empty":
		fmt.Println(`{"events":[]}`)
	case "env":
		fmt.Printf(`{"events":[["ENV","ENV",%q]]}`+"\n", os.Getenv("PETRARCH_VERB_FILE"))
	case "failure":
		fmt.Fprintln(os.Stderr, "tree walk failed")
		os.Exit(1)
	case "badjson":
		fmt.Println("not-json")
	case "short":
		fmt.Println(`{"events":[["FRA","USA"]]}`)
	case "reported":
		fmt.Println(`{"events":[],"error":"verb dictionary missing"}`)
	case "slow":
		time.Sleep(5 * time.Second)
	}
	os.Exit(0)
}
