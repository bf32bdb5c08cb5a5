package domain

type Table string

const (
	TableAuctions          Table = "auctions"
	TableAuctionParameters Table = "auction_parameters"
	TableAuctionEvents     Table = "auction_events"
	TableCarryovers        Table = "auction_carryovers"
	TableBalances          Table = "token_balances"
	TableSequences         Table = "sequences"
)
