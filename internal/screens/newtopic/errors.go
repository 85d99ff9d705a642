package newtopic

import "errors"

var errNoContent = errors.New("no LLM provider is configured; set an API key (see khalari llm list)")
