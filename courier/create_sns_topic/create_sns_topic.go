package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// One-time setup: creates the SNS topic that run completions are
// published to.
func main() {
	name := flag.String("name", "srt_voiceover_runs", "SNS topic name to create")
	flag.Parse()
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}
	client := sns.NewFromConfig(cfg)
	input := &sns.CreateTopicInput{
		Name: aws.String(*name),
	}
	result, err := client.CreateTopic(ctx, input)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Created topic: %s\n", *result.TopicArn)
}
