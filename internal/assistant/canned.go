package assistant

import (
	"context"
	"math/rand/v2"
	"time"
)

var cannedReplies = map[Purpose][]string{
	PurposeChat: {
		"This section discusses key concepts that are fundamental to understanding the broader topic. The main ideas presented include detailed analysis of methodologies and their practical applications.",
		"From what I can see on this page, there are several important points worth highlighting. The author emphasizes the significance of these concepts in the context of the overall framework.",
		"This page contains valuable information about the theoretical foundations. The content builds upon previous chapters to establish a comprehensive understanding of the subject matter.",
		"The material on this page provides crucial insights into the practical implementation of these concepts. It offers detailed examples and case studies that illustrate the principles in action.",
	},
	PurposeTranslate: {
		"This is a sample translated text that would appear here after the AI processes the current page content...",
	},
	PurposeSummarize: {
		"This page discusses the key concepts and methodologies related to the topic. The main points include several important considerations that readers should understand...",
	},
}

// CannedProvider answers from a fixed set of replies after a delay. It is
// the offline default when no model server is configured.
type CannedProvider struct {
	Delay time.Duration
	// Pick chooses a reply index in [0, n). Defaults to a random pick.
	Pick func(n int) int
}

var _ Provider = (*CannedProvider)(nil)

func NewCannedProvider(delay time.Duration) *CannedProvider {
	return &CannedProvider{Delay: delay}
}

func (c *CannedProvider) Chat(ctx context.Context, _ []Message, opts ...Option) (string, error) {
	return c.reply(ctx, buildOptions(opts).Purpose)
}

func (c *CannedProvider) Generate(ctx context.Context, _ string, opts ...Option) (string, error) {
	return c.reply(ctx, buildOptions(opts).Purpose)
}

func (c *CannedProvider) reply(ctx context.Context, p Purpose) (string, error) {
	if c.Delay > 0 {
		t := time.NewTimer(c.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return "", err
	}

	replies, ok := cannedReplies[p]
	if !ok {
		replies = cannedReplies[PurposeChat]
	}
	pick := c.Pick
	if pick == nil {
		pick = rand.IntN
	}
	return replies[pick(len(replies))], nil
}
