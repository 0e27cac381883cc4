// Package agent provides the bounded tool-calling loop.
//
// An agent owns the transcript for one question. Each iteration asks the
// model for its next action; requested tool calls are dispatched one at a
// time through a tool.Registry and their results appended to the transcript
// before the model is asked again. The loop stops when the model replies
// without tool calls, or after MaxIterations tool-deciding calls, when one
// final call with tool choice "none" is made and its text becomes the answer.
//
// # Basic Usage
//
//	registry := tool.NewRegistry()
//	tool.MustRegisterAll(registry, tool.Builtins(os.Getenv("TAVILY_API_KEY")))
//
//	a := agent.New(client, registry, agent.WithMaxIterations(5))
//	result, err := a.Run(ctx, "Has bitcoin ever traded above $100k? When?")
//	if err != nil {
//	    var modelErr *agent.ModelError
//	    if errors.As(err, &modelErr) {
//	        // the model call at modelErr.Iteration failed
//	    }
//	    return err
//	}
//	fmt.Println(result.Answer, result.Termination)
//
// # Progress Events
//
// WithEvents receives run_start, iteration_start, tool_call, tool_result,
// forced_final and run_end (or run_error) events. Sends never block.
//
// # Tracing
//
// Runs, model calls and tool calls are recorded as OpenTelemetry spans named
// agent.run, agent.model_call and agent.tool_call.
package agent
