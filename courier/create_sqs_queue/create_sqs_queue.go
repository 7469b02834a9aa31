package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// One-time setup: creates the SQS queue that run completion records are
// enqueued to.
func main() {
	name := flag.String("name", "srt_voiceover_runs", "SQS queue name to create")
	flag.Parse()
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}
	client := sqs.NewFromConfig(cfg)
	input := &sqs.CreateQueueInput{
		QueueName: aws.String(*name),
		Attributes: map[string]string{
			"DelaySeconds":           "0",
			"MessageRetentionPeriod": "1209600", // 14 days
		},
	}
	result, err := client.CreateQueue(ctx, input)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Created queue: %s\n", *result.QueueUrl)
}
