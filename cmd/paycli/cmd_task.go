package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/agentpay-io/agentpay-go/client"
	"github.com/agentpay-io/agentpay-go/units"
)

func cmdCreateTask(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Escrow an amount with the contract and open a new task for the given payee.

The command blocks until the transaction is mined and prints the id of the
created task.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl = fl.String("node", env("PAYCLI_NODE_ADDR", "http://127.0.0.1:8545"),
			"Ethereum node address. You can use PAYCLI_NODE_ADDR environment variable to set it.")
		contractFl = fl.String("contract", env("PAYCLI_CONTRACT_ADDR", ""),
			"Escrow contract address. You can use PAYCLI_CONTRACT_ADDR environment variable to set it.")
		keyFl = fl.String("key", env("PAYCLI_PRIV_KEY", defaultKeyPath()),
			"Path to the private key file that the transaction should be signed with. You can use PAYCLI_PRIV_KEY environment variable to set it.")
		payeeFl  = flAddress(fl, "payee", "", "Address of the agent that is to deliver the work.")
		descFl   = fl.String("desc", "", "Human readable description of the task.")
		amountFl = flAmount(fl, "amount", "", "Amount of ether to escrow, for example \"1.5\".")
		timeoutFl = fl.Duration("timeout", client.DefaultReceiptTimeout,
			"How long to wait for the transaction to be mined.")
		verboseFl = fl.Bool("verbose", false, "Log transaction progress to stderr.")
	)
	fl.Parse(args)

	ctx := context.Background()
	c, err := signingClient(ctx, *nodeFl, *contractFl, *keyFl,
		client.WithReceiptTimeout(*timeoutFl),
		client.WithLogger(cmdLogger(*verboseFl)))
	if err != nil {
		return err
	}

	res, err := c.CreateTask(ctx, payeeFl.String(), *descFl, amountFl.Ether())
	if err != nil {
		return fmt.Errorf("cannot create task: %s", err)
	}
	if res.TaskID != nil {
		fmt.Fprintln(output, res.TaskID)
	} else {
		fmt.Fprintf(output, "transaction %s mined, task id not reported\n", res.TxHash.Hex())
	}
	return nil
}

func cmdSubmitDeliverable(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Record the deliverable hash for a task you are the payee of.

The command blocks until the transaction is mined and prints the transaction
hash.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl = fl.String("node", env("PAYCLI_NODE_ADDR", "http://127.0.0.1:8545"),
			"Ethereum node address. You can use PAYCLI_NODE_ADDR environment variable to set it.")
		contractFl = fl.String("contract", env("PAYCLI_CONTRACT_ADDR", ""),
			"Escrow contract address. You can use PAYCLI_CONTRACT_ADDR environment variable to set it.")
		keyFl = fl.String("key", env("PAYCLI_PRIV_KEY", defaultKeyPath()),
			"Path to the private key file that the transaction should be signed with. You can use PAYCLI_PRIV_KEY environment variable to set it.")
		taskFl = flTaskID(fl, "task", "Id of the task the deliverable belongs to.")
		hashFl = fl.String("hash", "", "Hash of the deliverable content, for example an IPFS CID.")
		timeoutFl = fl.Duration("timeout", client.DefaultReceiptTimeout,
			"How long to wait for the transaction to be mined.")
		verboseFl = fl.Bool("verbose", false, "Log transaction progress to stderr.")
	)
	fl.Parse(args)

	ctx := context.Background()
	c, err := signingClient(ctx, *nodeFl, *contractFl, *keyFl,
		client.WithReceiptTimeout(*timeoutFl),
		client.WithLogger(cmdLogger(*verboseFl)))
	if err != nil {
		return err
	}

	res, err := c.SubmitDeliverable(ctx, taskFl.BigInt(), *hashFl)
	if err != nil {
		return fmt.Errorf("cannot submit deliverable: %s", err)
	}
	fmt.Fprintln(output, res.TxHash.Hex())
	return nil
}

func cmdScoreTask(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Score the submitted work between 0 and 100 and settle the escrow.

The contract pays the payee proportionally to the score and refunds the rest
to the payer. The command blocks until the transaction is mined and prints
the resulting payout split.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl = fl.String("node", env("PAYCLI_NODE_ADDR", "http://127.0.0.1:8545"),
			"Ethereum node address. You can use PAYCLI_NODE_ADDR environment variable to set it.")
		contractFl = fl.String("contract", env("PAYCLI_CONTRACT_ADDR", ""),
			"Escrow contract address. You can use PAYCLI_CONTRACT_ADDR environment variable to set it.")
		keyFl = fl.String("key", env("PAYCLI_PRIV_KEY", defaultKeyPath()),
			"Path to the private key file that the transaction should be signed with. You can use PAYCLI_PRIV_KEY environment variable to set it.")
		taskFl  = flTaskID(fl, "task", "Id of the task to score.")
		scoreFl = fl.Int64("score", -1, "Quality score between 0 and 100.")
		timeoutFl = fl.Duration("timeout", client.DefaultReceiptTimeout,
			"How long to wait for the transaction to be mined.")
		verboseFl = fl.Bool("verbose", false, "Log transaction progress to stderr.")
	)
	fl.Parse(args)

	ctx := context.Background()
	c, err := signingClient(ctx, *nodeFl, *contractFl, *keyFl,
		client.WithReceiptTimeout(*timeoutFl),
		client.WithLogger(cmdLogger(*verboseFl)))
	if err != nil {
		return err
	}

	res, err := c.ScoreAndResolve(ctx, taskFl.BigInt(), *scoreFl)
	if err != nil {
		return fmt.Errorf("cannot score task: %s", err)
	}
	if res.EventFound {
		fmt.Fprintf(output, "payee %v ETH, refund %v ETH\n", res.PayeeAmount, res.RefundAmount)
	} else {
		fmt.Fprintf(output, "transaction %s mined, payout not reported\n", res.TxHash.Hex())
	}
	return nil
}

func cmdCancelTask(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Cancel a task that was never submitted and recover the escrowed amount.

The command blocks until the transaction is mined and prints the transaction
hash.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl = fl.String("node", env("PAYCLI_NODE_ADDR", "http://127.0.0.1:8545"),
			"Ethereum node address. You can use PAYCLI_NODE_ADDR environment variable to set it.")
		contractFl = fl.String("contract", env("PAYCLI_CONTRACT_ADDR", ""),
			"Escrow contract address. You can use PAYCLI_CONTRACT_ADDR environment variable to set it.")
		keyFl = fl.String("key", env("PAYCLI_PRIV_KEY", defaultKeyPath()),
			"Path to the private key file that the transaction should be signed with. You can use PAYCLI_PRIV_KEY environment variable to set it.")
		taskFl = flTaskID(fl, "task", "Id of the task to cancel.")
		timeoutFl = fl.Duration("timeout", client.DefaultReceiptTimeout,
			"How long to wait for the transaction to be mined.")
		verboseFl = fl.Bool("verbose", false, "Log transaction progress to stderr.")
	)
	fl.Parse(args)

	ctx := context.Background()
	c, err := signingClient(ctx, *nodeFl, *contractFl, *keyFl,
		client.WithReceiptTimeout(*timeoutFl),
		client.WithLogger(cmdLogger(*verboseFl)))
	if err != nil {
		return err
	}

	res, err := c.CancelTask(ctx, taskFl.BigInt())
	if err != nil {
		return fmt.Errorf("cannot cancel task: %s", err)
	}
	fmt.Fprintln(output, res.TxHash.Hex())
	return nil
}

func cmdShowTask(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Display the current state of a task as JSON.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl = fl.String("node", env("PAYCLI_NODE_ADDR", "http://127.0.0.1:8545"),
			"Ethereum node address. You can use PAYCLI_NODE_ADDR environment variable to set it.")
		contractFl = fl.String("contract", env("PAYCLI_CONTRACT_ADDR", ""),
			"Escrow contract address. You can use PAYCLI_CONTRACT_ADDR environment variable to set it.")
		taskFl = flTaskID(fl, "task", "Id of the task to display.")
	)
	fl.Parse(args)

	ctx := context.Background()
	c, err := escrowClient(ctx, *nodeFl, *contractFl)
	if err != nil {
		return err
	}

	task, err := c.GetTask(ctx, taskFl.BigInt())
	if err != nil {
		return fmt.Errorf("cannot read task: %s", err)
	}
	pretty, err := json.MarshalIndent(task, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	pretty = append(pretty, '\n')
	_, err = output.Write(pretty)
	return err
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the ether balance of an address.
`)
		fl.PrintDefaults()
	}
	var (
		nodeFl = fl.String("node", env("PAYCLI_NODE_ADDR", "http://127.0.0.1:8545"),
			"Ethereum node address. You can use PAYCLI_NODE_ADDR environment variable to set it.")
		contractFl = fl.String("contract", env("PAYCLI_CONTRACT_ADDR", ""),
			"Escrow contract address. You can use PAYCLI_CONTRACT_ADDR environment variable to set it.")
		addrFl = flAddress(fl, "addr", "", "Address to query.")
	)
	fl.Parse(args)

	ctx := context.Background()
	c, err := escrowClient(ctx, *nodeFl, *contractFl)
	if err != nil {
		return err
	}

	wei, err := c.GetBalanceWei(ctx, addrFl.String())
	if err != nil {
		return fmt.Errorf("cannot read balance: %s", err)
	}
	fmt.Fprintln(output, units.FormatEther(wei))
	return nil
}
