// Package client selects a chat provider by name and applies request defaults.
//
//	c, err := client.New(client.Config{
//	    Provider: scout.ProviderOpenAI,
//	    Model:    "gpt-4o-mini",
//	    APIKeys:  client.APIKeys{OpenAI: os.Getenv("OPENAI_API_KEY")},
//	}, client.WithDefaultTemperature(0))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := c.Chat(ctx, []scout.Message{scout.NewUserMessage("Hello!")})
//
// The client makes each request exactly once. Provider errors come back
// categorized (see scout.IsTransient) so callers can decide for themselves
// whether to try again.
package client
