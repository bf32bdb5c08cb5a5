package usecase

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

type logEmitter struct{}

// NewLogEmitter writes every event to the context logger
func NewLogEmitter() auction.EventEmitter {
	return &logEmitter{}
}

func (e *logEmitter) Emit(c ctx.Ctx, evt auction.Event) {
	c.WithFields(log.Fields{
		"eventId":   evt.EventId,
		"type":      evt.Type,
		"auctionId": evt.AuctionId,
		"key":       evt.Key.String(),
		"account":   evt.Account,
	}).Info("auction event")
}

type historyEmitter struct {
	repo auction.EventRepo
}

// NewHistoryEmitter persists events so they can be listed per auction
func NewHistoryEmitter(repo auction.EventRepo) auction.EventEmitter {
	return &historyEmitter{repo: repo}
}

func (e *historyEmitter) Emit(c ctx.Ctx, evt auction.Event) {
	if err := e.repo.Insert(c, evt); err != nil {
		c.WithFields(log.Fields{"err": err, "eventId": evt.EventId}).Error("eventRepo.Insert failed")
	}
}

type fanoutEmitter struct {
	sinks []auction.EventEmitter
}

func NewFanoutEmitter(sinks ...auction.EventEmitter) auction.EventEmitter {
	return &fanoutEmitter{sinks: sinks}
}

func (e *fanoutEmitter) Emit(c ctx.Ctx, evt auction.Event) {
	for _, s := range e.sinks {
		s.Emit(c, evt)
	}
}

type asyncEmitter struct {
	next    auction.EventEmitter
	pool    *goroutines.Pool
	timeout time.Duration
}

// NewAsyncEmitter hands events to next on a worker pool, an event is dropped
// when no worker picks it up within timeout
func NewAsyncEmitter(next auction.EventEmitter, pool *goroutines.Pool, timeout time.Duration) auction.EventEmitter {
	return &asyncEmitter{next: next, pool: pool, timeout: timeout}
}

func (e *asyncEmitter) Emit(c ctx.Ctx, evt auction.Event) {
	err := e.pool.ScheduleWithTimeout(e.timeout, func() {
		e.next.Emit(c, evt)
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err, "eventId": evt.EventId}).Error("failed to schedule event")
	}
}

// DiscordSender is the part of discordgo.Session the notifier uses
type DiscordSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type DiscordEmitterCfg struct {
	Sender    DiscordSender
	ChannelId string
	// Tokens are used to render amounts, unknown assets are shown in base units
	Tokens []domain.Token
}

type discordEmitter struct {
	sender    DiscordSender
	channelId string
	tokens    map[domain.Address]domain.Token
}

func NewDiscordEmitter(cfg *DiscordEmitterCfg) auction.EventEmitter {
	tokens := make(map[domain.Address]domain.Token)
	for _, t := range cfg.Tokens {
		tokens[t.Address.ToLower()] = t
	}
	return &discordEmitter{
		sender:    cfg.Sender,
		channelId: cfg.ChannelId,
		tokens:    tokens,
	}
}

// NewDiscordSession opens a bot session for NewDiscordEmitter
func NewDiscordSession(botKey string) (*discordgo.Session, error) {
	return discordgo.New(fmt.Sprintf("Bot %s", botKey))
}

func (e *discordEmitter) amount(asset domain.Address, v *big.Int) string {
	if t, ok := e.tokens[asset.ToLower()]; ok {
		return fmt.Sprintf("%s %s", t.Display(v), t.Symbol)
	}
	return v.String()
}

func (e *discordEmitter) embed(evt auction.Event) *discordgo.MessageEmbed {
	msg := &discordgo.MessageEmbed{
		Description: evt.Key.String(),
		Timestamp:   evt.Timestamp.UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Auction", Value: strconv.FormatUint(uint64(evt.AuctionId), 10)},
		},
	}

	switch evt.Type {
	case auction.EventAuctionCreated:
		msg.Title = "Auction started!"
		msg.Fields = append(msg.Fields,
			&discordgo.MessageEmbedField{Name: "Kicker", Value: string(evt.Account)},
			&discordgo.MessageEmbedField{Name: "Tokens", Value: e.amount(evt.Key.Asset, evt.TotalTokens)},
			&discordgo.MessageEmbedField{Name: "Kicker reward", Value: e.amount(evt.Key.Asset, evt.KickerCut)},
		)
	case auction.EventTokensPurchased:
		msg.Title = "Tokens bought!"
		msg.Fields = append(msg.Fields,
			&discordgo.MessageEmbedField{Name: "Buyer", Value: string(evt.Account)},
			&discordgo.MessageEmbedField{Name: "Quantity", Value: e.amount(evt.Key.Asset, evt.Quantity)},
			&discordgo.MessageEmbedField{Name: "Paid", Value: e.amount(evt.PaymentToken, evt.PricePaid)},
		)
	case auction.EventAuctionFinalized:
		msg.Title = "Auction finalized!"
		msg.Fields = append(msg.Fields,
			&discordgo.MessageEmbedField{Name: "Unsold", Value: e.amount(evt.Key.Asset, evt.UnsoldAmount)},
		)
	}
	return msg
}

func (e *discordEmitter) Emit(c ctx.Ctx, evt auction.Event) {
	if _, err := e.sender.ChannelMessageSendEmbed(e.channelId, e.embed(evt)); err != nil {
		c.WithFields(log.Fields{"err": err, "eventId": evt.EventId}).Error("discord.ChannelMessageSendEmbed failed")
	}
}
