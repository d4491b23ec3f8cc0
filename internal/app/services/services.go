package services

// Services defined in this package:
// - AuthService: signup and signin
// - UserService: profiles, the user directory and presence
// - MessageService: direct messages, unread counts and live delivery
// - PostService: collaboration and alumni posts with their images
