// internal/sitegen/salon.go
//
// Hair-salon page: purple/pink palette, service cards with sparkle
// badges, business hours, a gallery placeholder grid, and a booking
// form with a preferred-date field.
package sitegen

const salonTmpl = `<!DOCTYPE html>
<html lang="en">
{{template "head" .}}
<body class="bg-gray-50">
  <!-- Hero Section -->
  <section class="bg-gradient-to-r from-purple-500 to-pink-600 text-white py-20 px-4">
    <div class="max-w-6xl mx-auto text-center">
      <h1 class="text-5xl md:text-6xl font-bold mb-4">{{.Data.BusinessName}}</h1>
      <p class="text-xl md:text-2xl mb-8">Your beauty is our passion</p>
      <a href="#contact" class="inline-block bg-white text-purple-600 px-8 py-4 rounded-lg text-lg font-semibold hover:bg-gray-100 transition-colors shadow-lg">
        Book Appointment
      </a>
    </div>
  </section>

  <!-- About Section -->
  <section class="py-16 px-4 bg-white">
    <div class="max-w-4xl mx-auto">
      <h2 class="text-4xl font-bold text-center mb-8 text-gray-900">About Us</h2>
      <p class="text-lg text-gray-700 leading-relaxed text-center">{{.Data.AboutUs}}</p>
    </div>
  </section>

  <!-- Services Section -->
  <section class="py-16 px-4 bg-gray-50">
    <div class="max-w-6xl mx-auto">
      <h2 class="text-4xl font-bold text-center mb-12 text-gray-900">Our Services</h2>
      <div class="grid md:grid-cols-3 gap-8">
        {{range .Data.Services}}
        <div class="bg-white rounded-lg shadow-md p-6 text-center hover:shadow-xl transition-shadow">
          <div class="w-16 h-16 bg-gradient-to-br from-purple-200 to-pink-200 rounded-full mx-auto mb-4 flex items-center justify-center">
            <span class="text-2xl">&#10024;</span>
          </div>
          <h3 class="text-xl font-semibold mb-2 text-gray-900">{{.}}</h3>
          <p class="text-gray-600">Professional service</p>
        </div>
        {{end}}
      </div>
    </div>
  </section>

  {{template "hoursSection" .}}

  <!-- Gallery Placeholder -->
  <section class="py-16 px-4 bg-gray-50">
    <div class="max-w-6xl mx-auto">
      <h2 class="text-4xl font-bold text-center mb-12 text-gray-900">Gallery</h2>
      <div class="grid md:grid-cols-3 gap-4">
        <div class="aspect-square bg-gradient-to-br from-purple-200 to-pink-200 rounded-lg"></div>
        <div class="aspect-square bg-gradient-to-br from-purple-200 to-pink-200 rounded-lg"></div>
        <div class="aspect-square bg-gradient-to-br from-purple-200 to-pink-200 rounded-lg"></div>
        <div class="aspect-square bg-gradient-to-br from-purple-200 to-pink-200 rounded-lg"></div>
        <div class="aspect-square bg-gradient-to-br from-purple-200 to-pink-200 rounded-lg"></div>
        <div class="aspect-square bg-gradient-to-br from-purple-200 to-pink-200 rounded-lg"></div>
      </div>
    </div>
  </section>

  <!-- Booking Form Section -->
  <section id="contact" class="py-16 px-4 bg-white">
    <div class="max-w-2xl mx-auto">
      <h2 class="text-4xl font-bold text-center mb-8 text-gray-900">Book an Appointment</h2>
      <form id="contactForm" class="bg-gray-50 rounded-lg shadow-md p-8">
        <div class="mb-6">
          <label for="name" class="block text-gray-700 font-semibold mb-2">Name *</label>
          <input type="text" id="name" name="name" required class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-purple-500 focus:border-transparent" placeholder="Your name">
        </div>
        <div class="mb-6">
          <label for="email" class="block text-gray-700 font-semibold mb-2">Email *</label>
          <input type="email" id="email" name="email" required class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-purple-500 focus:border-transparent" placeholder="your@email.com">
        </div>
        <div class="mb-6">
          <label for="phone" class="block text-gray-700 font-semibold mb-2">Phone *</label>
          <input type="tel" id="phone" name="phone" required class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-purple-500 focus:border-transparent" placeholder="Your phone number">
        </div>
        <div class="mb-6">
          <label for="preferredDate" class="block text-gray-700 font-semibold mb-2">Preferred Date</label>
          <input type="date" id="preferredDate" name="preferredDate" class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-purple-500 focus:border-transparent">
        </div>
        <div class="mb-6">
          <label for="message" class="block text-gray-700 font-semibold mb-2">Message *</label>
          <textarea id="message" name="message" required rows="5" class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-purple-500 focus:border-transparent" placeholder="Tell us about your desired service"></textarea>
        </div>
        <button type="submit" class="w-full bg-purple-600 text-white px-8 py-4 rounded-lg text-lg font-semibold hover:bg-purple-700 transition-colors">
          Send Booking Request
        </button>
        <div id="formMessage" class="mt-4 text-center hidden"></div>
      </form>
    </div>
  </section>

  {{template "contactInfo" .}}
  {{template "footer" .}}
  {{template "contactScript" .}}
</body>
</html>`
