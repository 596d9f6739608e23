package fusekafka

// Args renders the worker argument vector: "--name" followed by each token,
// for every key in insertion order. Values are not quoted; the result must be
// passed to exec directly, never through a shell.
func (c *Configuration) Args() []string {
	args := make([]string, 0, 2*c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		args = append(args, "--"+pair.Key)
		args = append(args, pair.Value...)
	}
	return args
}
