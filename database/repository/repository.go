package repository

import (
	accountRepo "github.com/bricker/vivial-sub000/database/repository/account"
	bookingRepo "github.com/bricker/vivial-sub000/database/repository/booking"
	outingRepo "github.com/bricker/vivial-sub000/database/repository/outing"
	venueRepo "github.com/bricker/vivial-sub000/database/repository/venue"
)

// Re-export the AccountRepository interface and constructor.
type AccountRepository = accountRepo.AccountRepository

var NewMongoAccountRepo = accountRepo.NewMongoAccountRepo

// Re-export the OutingRepository interface and constructor.
type OutingRepository = outingRepo.OutingRepository

var NewMongoOutingRepo = outingRepo.NewMongoOutingRepo

// Re-export the BookingRepository interface and constructors.
type BookingRepository = bookingRepo.BookingRepository

type ReserverDetailsRepository = bookingRepo.ReserverDetailsRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

var NewMongoReserverDetailsRepo = bookingRepo.NewMongoReserverDetailsRepo

// Re-export the VenueRepository interface and constructor.
type VenueRepository = venueRepo.VenueRepository

var NewMongoVenueRepo = venueRepo.NewMongoVenueRepo
